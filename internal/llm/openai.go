package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OpenAIProvider talks to the OpenAI chat completions API. Groq, OpenRouter
// and custom endpoints reuse it with a different base URL.
type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newOpenAICompatible("openai", "https://api.openai.com/v1", apiKey, model)
}

func newOpenAICompatible(name, baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:       name,
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) headers() map[string]string {
	if o.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + o.apiKey}
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	status, err := getStatus(ctx, o.httpClient, o.baseURL+"/models", o.headers())
	if err != nil {
		return fmt.Errorf("cannot connect to %s API: %w", o.name, err)
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s API error: status %d", o.name, status)
	}
	return nil
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	Stream         bool            `json:"stream"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIStreamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (o *OpenAIProvider) buildRequest(req *CompletionRequest, stream bool) openAIRequest {
	model := req.Model
	if model == "" {
		model = o.model
	}
	apiReq := openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stream:      stream,
	}
	if req.JSON {
		apiReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return apiReq
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	apiReq := o.buildRequest(req, false)

	resp, err := postJSON(ctx, o.httpClient, o.name, o.baseURL+"/chat/completions", o.headers(), apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%s decode: %w", o.name, err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("%s: %w", o.name, ErrNoResponse)
	}

	return &CompletionResponse{
		Content:      apiResp.Choices[0].Message.Content,
		Model:        apiReq.Model,
		FinishReason: apiResp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

func (o *OpenAIProvider) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamEvent, error) {
	resp, err := postJSON(ctx, o.httpClient, o.name, o.baseURL+"/chat/completions", o.headers(), o.buildRequest(req, true))
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)

	go func() {
		defer close(events)
		defer resp.Body.Close()

		err := readSSE(resp.Body, func(data string) bool {
			if data == "[DONE]" {
				return true
			}

			var chunk openAIStreamResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				return false
			}
			if len(chunk.Choices) == 0 {
				return false
			}
			if text := chunk.Choices[0].Delta.Content; text != "" {
				if !send(ctx, events, StreamEvent{Chunk: text}) {
					return true
				}
			}
			return chunk.Choices[0].FinishReason != nil
		})

		finish(ctx, events, err)
	}()

	return events, nil
}

// finish emits the terminal event of a stream. A body that ends without an
// explicit terminator still counts as done.
func finish(ctx context.Context, events chan<- StreamEvent, err error) {
	if ctx.Err() != nil {
		select {
		case events <- StreamEvent{Error: ctx.Err()}:
		default:
		}
		return
	}
	if err != nil {
		send(ctx, events, StreamEvent{Error: err})
		return
	}
	send(ctx, events, StreamEvent{Done: true})
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	result := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return result
}
