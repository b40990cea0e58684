package prompts

import (
	"strings"
	"testing"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		section string
		m       map[string]string
		ids     []string
	}{
		{"tones", c.Tones, []string{"casual", "professional", "friendly", "confident", "empathetic", "academic", "witty", "dramatic"}},
		{"strengths", c.Strengths, []string{"low", "medium", "high", "maximum"}},
		{"purposes", c.Purposes, []string{"general", "essay", "email", "blog", "story", "cover_letter", "marketing"}},
		{"readability", c.Readability, []string{"standard", "simple", "high_school", "university", "phd"}},
	}
	for _, tt := range tests {
		for _, id := range tt.ids {
			if strings.TrimSpace(tt.m[id]) == "" {
				t.Errorf("%s.%s missing", tt.section, id)
			}
		}
	}

	again, _ := Load()
	if again != c {
		t.Error("catalog parsed twice")
	}
}

func TestCatalog_Fallback(t *testing.T) {
	c, err := ParseCatalog("[tones]\ncasual = \"relaxed\"\nblank = \"  \"\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Persona("casual", "Casual"); got != "relaxed" {
		t.Errorf("Persona(casual) = %q", got)
	}
	if got := c.Persona("blank", "Blank"); got != "Blank" {
		t.Errorf("blank entry not replaced: %q", got)
	}
	if got := c.Directive("maximum", "Maximum"); got != "Maximum" {
		t.Errorf("missing section not replaced: %q", got)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	if _, err := ParseCatalog("[tones\n"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSystemPrompts(t *testing.T) {
	if RewriteSystem() == "" || DetectSystem() == "" {
		t.Fatal("embedded prompts empty")
	}
	if !strings.Contains(DetectSystem(), `"verdict"`) {
		t.Error("detector prompt does not describe the reply shape")
	}
}
