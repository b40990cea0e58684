package llm

import (
	"testing"

	"github.com/sant0-9/quill/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		baseURL  string
		wantName string
		wantErr  bool
	}{
		{"ollama", "", "", "ollama", false},
		{"openai", "k", "", "openai", false},
		{"openai", "", "", "", true},
		{"anthropic", "k", "", "anthropic", false},
		{"groq", "k", "", "groq", false},
		{"openrouter", "k", "", "openrouter", false},
		{"gemini", "k", "", "gemini", false},
		{"gemini", "", "", "", true},
		{"custom", "", "http://localhost:1234/v1", "custom", false},
		{"custom", "", "", "", true},
		{"acme", "k", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.wantName, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Provider = tt.provider
			cfg.APIKey = tt.apiKey
			cfg.BaseURL = tt.baseURL

			p, err := NewProvider(cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
			if _, ok := p.(*RetryProvider); !ok {
				t.Errorf("provider not wrapped with retry: %T", p)
			}
		})
	}
}

func TestNewProvider_NoRetry(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Retry.MaxRetries = 0

	p, err := NewProvider(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*OllamaProvider); !ok {
		t.Errorf("got %T, want *OllamaProvider", p)
	}
}

func TestNewLocalProvider(t *testing.T) {
	cfg := config.DefaultConfig()

	p, err := NewLocalProvider(cfg, nil)
	if err != nil || p != nil {
		t.Fatalf("disabled local: p = %v err = %v", p, err)
	}

	cfg.Local.Enabled = true
	p, err = NewLocalProvider(cfg, nil)
	if err != nil || p == nil || p.Name() != "ollama" {
		t.Fatalf("enabled local: p = %v err = %v", p, err)
	}

	cfg.Local.Provider = "lmstudio"
	if _, err := NewLocalProvider(cfg, nil); err == nil {
		t.Error("expected error for unknown local provider")
	}
}
