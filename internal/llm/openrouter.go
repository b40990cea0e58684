package llm

type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "meta-llama/llama-3.1-70b-instruct"
	}
	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible("openrouter", "https://openrouter.ai/api/v1", apiKey, model),
	}
}
