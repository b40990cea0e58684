package llm

// GroqProvider uses Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible("groq", "https://api.groq.com/openai/v1", apiKey, model),
	}
}
