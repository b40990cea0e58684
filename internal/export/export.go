// Package export writes rewritten text to files in a few formats.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	Text     Format = "text"
)

func Formats() []Format {
	return []Format{Markdown, HTML, Text}
}

// ParseFormat accepts a format name or a common extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "text", "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown export format: %s", s)
	}
}

// FormatFromPath picks a format from the file extension. Unknown or missing
// extensions mean plain text.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return Text
	}
	return f
}

func (f Format) Ext() string {
	switch f {
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	default:
		return ".txt"
	}
}

// DefaultFilename is the suggested file name for an export.
func DefaultFilename(f Format) string {
	return "humanized-text" + f.Ext()
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Humanized text</title>
<style>body{font-family:Georgia,serif;max-width:42rem;margin:3rem auto;line-height:1.6;padding:0 1rem}</style>
</head>
<body>
%s</body>
</html>
`

// Write renders content in format f to w.
func Write(w io.Writer, f Format, content string) error {
	switch f {
	case Markdown, Text:
		_, err := io.WriteString(w, content)
		return err
	case HTML:
		var body bytes.Buffer
		if err := goldmark.Convert([]byte(content), &body); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		_, err := fmt.Fprintf(w, htmlTemplate, body.String())
		return err
	default:
		return fmt.Errorf("unknown export format: %s", f)
	}
}

// ToFile writes content to path, creating parent directories.
func ToFile(path string, f Format, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, f, content); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
