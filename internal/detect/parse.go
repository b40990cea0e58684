package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// reply is the wire shape the model is asked for. Every field is optional
// and null counts as missing.
type reply struct {
	Score    *float64 `json:"score,omitempty" jsonschema:"nullable,description=0-100 where 100 means machine-written"`
	Verdict  *string  `json:"verdict,omitempty" jsonschema:"nullable"`
	Analysis *string  `json:"analysis,omitempty" jsonschema:"nullable"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ReplySchema returns the JSON Schema reflected from the reply shape.
func ReplySchema() string {
	reflector := invopopSchema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	raw, err := json.MarshalIndent(reflector.Reflect(&reply{}), "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("reply.json", ReplySchema())
	})
	return schema, schemaErr
}

// extractJSON pulls the JSON payload out of a model reply. Replies may be
// bare JSON, wrapped in a fenced code block, or surrounded by prose.
func extractJSON(content string) string {
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var fenced string
	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := string(block.Language(source))
		if lang != "" && lang != "json" {
			return ast.WalkSkipChildren, nil
		}
		var buf bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}
		fenced = buf.String()
		return ast.WalkStop, nil
	})
	if strings.TrimSpace(fenced) != "" {
		return strings.TrimSpace(fenced)
	}

	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}

// parseReply turns model output into a Result. Missing fields take
// defaults; malformed output is an error.
func parseReply(content string) (Result, error) {
	payload := extractJSON(content)

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return Result{}, fmt.Errorf("invalid JSON: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return Result{}, fmt.Errorf("reply schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	var r reply
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return Result{}, fmt.Errorf("decode reply: %w", err)
	}

	result := Result{Verdict: VerdictHuman, Analysis: "Analysis unavailable."}
	if r.Score != nil {
		result.Score = int(math.Round(min(max(*r.Score, 0), 100)))
	}
	if r.Verdict != nil {
		result.Verdict = normalizeVerdict(*r.Verdict, result.Score)
	}
	if r.Analysis != nil && strings.TrimSpace(*r.Analysis) != "" {
		result.Analysis = strings.TrimSpace(*r.Analysis)
	}
	return result, nil
}
