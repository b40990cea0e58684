package llm

import "strings"

// CustomProvider targets any OpenAI-compatible server (LM Studio, vLLM, ...).
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible("custom", strings.TrimRight(baseURL, "/"), apiKey, model),
	}
}
