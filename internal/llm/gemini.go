package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiProvider calls the Google Gemini API.
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiAPIBase,
		httpClient: newHTTPClient(),
	}
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) headers() map[string]string {
	return map[string]string{"x-goog-api-key": g.apiKey}
}

func (g *GeminiProvider) Ping(ctx context.Context) error {
	status, err := getStatus(ctx, g.httpClient, g.baseURL, g.headers())
	if err != nil {
		return fmt.Errorf("cannot connect to Gemini API: %w", err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusBadRequest {
		return fmt.Errorf("invalid API key")
	}
	if status != http.StatusOK {
		return fmt.Errorf("Gemini API error: status %d", status)
	}
	return nil
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func (r *geminiResponse) usage() *Usage {
	if r.UsageMetadata == nil {
		return nil
	}
	return &Usage{
		PromptTokens:     r.UsageMetadata.PromptTokenCount,
		CompletionTokens: r.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      r.UsageMetadata.TotalTokenCount,
	}
}

func (g *GeminiProvider) modelFor(req *CompletionRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return g.model
}

func (g *GeminiProvider) buildRequest(req *CompletionRequest) geminiRequest {
	system, rest := splitSystem(req.Messages)

	apiReq := geminiRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature,
			TopP:            req.TopP,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if system != "" {
		apiReq.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range rest {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		apiReq.Contents = append(apiReq.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}
	if req.JSON {
		apiReq.GenerationConfig.ResponseMimeType = "application/json"
	}
	return apiReq
}

func (g *GeminiProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := g.modelFor(req)
	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, model)

	resp, err := postJSON(ctx, g.httpClient, "gemini", url, g.headers(), g.buildRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini decode: %w", err)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: %w", ErrNoResponse)
	}

	result := &CompletionResponse{
		Content:      out.text(),
		Model:        model,
		FinishReason: out.Candidates[0].FinishReason,
	}
	if u := out.usage(); u != nil {
		result.Usage = *u
	}
	return result, nil
}

func (g *GeminiProvider) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamEvent, error) {
	url := fmt.Sprintf("%s/%s:streamGenerateContent?alt=sse", g.baseURL, g.modelFor(req))

	resp, err := postJSON(ctx, g.httpClient, "gemini", url, g.headers(), g.buildRequest(req))
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)

	go func() {
		defer close(events)
		defer resp.Body.Close()

		var usage *Usage
		err := readSSE(resp.Body, func(data string) bool {
			var chunk geminiResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				return false
			}
			if u := chunk.usage(); u != nil {
				usage = u
			}
			if text := chunk.text(); text != "" {
				return !send(ctx, events, StreamEvent{Chunk: text})
			}
			return false
		})

		if err == nil && ctx.Err() == nil {
			send(ctx, events, StreamEvent{Done: true, Usage: usage})
			return
		}
		finish(ctx, events, err)
	}()

	return events, nil
}
