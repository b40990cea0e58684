package llm

import (
	"fmt"
	"log/slog"

	"github.com/sant0-9/quill/internal/config"
)

// NewProvider creates a provider from config, wrapped with retry when
// cfg.Retry allows at least one retry.
func NewProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	p, err := newBaseProvider(cfg)
	if err != nil {
		return nil, err
	}
	return withRetry(p, cfg, logger), nil
}

func newBaseProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq requires an API key")
		}
		return NewGroqProvider(cfg.APIKey, cfg.Model), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil

	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key")
		}
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model), nil

	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		p := NewGeminiProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			p.baseURL = cfg.BaseURL
		}
		return p, nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// NewLocalProvider creates the local provider used for detection checks.
// It returns nil, nil when local mode is disabled.
func NewLocalProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	if cfg.Local == nil || !cfg.Local.Enabled {
		return nil, nil
	}

	switch cfg.Local.Provider {
	case "ollama", "":
		return withRetry(NewOllamaProvider(cfg.Local.Host, cfg.Local.Model), cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown local provider: %s", cfg.Local.Provider)
	}
}

func withRetry(p Provider, cfg *config.Config, logger *slog.Logger) Provider {
	if cfg.Retry.MaxRetries <= 0 {
		return p
	}
	rc := DefaultRetryConfig()
	rc.MaxRetries = cfg.Retry.MaxRetries
	if cfg.Retry.InitialBackoff > 0 {
		rc.InitialBackoff = cfg.Retry.InitialBackoff
	}
	if cfg.Retry.MaxBackoff > 0 {
		rc.MaxBackoff = cfg.Retry.MaxBackoff
	}
	return NewRetryProvider(p, rc, logger)
}
