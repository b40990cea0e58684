package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const anthropicVersion = "2023-06-01"

type AnthropicProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.anthropic.com/v1",
		httpClient: newHTTPClient(),
	}
}

func (a *AnthropicProvider) Name() string {
	return "anthropic"
}

func (a *AnthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}
}

func (a *AnthropicProvider) Ping(ctx context.Context) error {
	status, err := getStatus(ctx, a.httpClient, a.baseURL+"/models", a.headers())
	if err != nil {
		return fmt.Errorf("cannot connect to Anthropic API: %w", err)
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if status != http.StatusOK {
		return fmt.Errorf("Anthropic API error: status %d", status)
	}
	return nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
	TopP        float64            `json:"top_p,omitempty"`
	Stream      bool               `json:"stream"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *AnthropicProvider) buildRequest(req *CompletionRequest, stream bool) anthropicRequest {
	model := req.Model
	if model == "" {
		model = a.model
	}

	system, rest := splitSystem(req.Messages)
	messages := make([]anthropicMessage, len(rest))
	for i, m := range rest {
		messages[i] = anthropicMessage{Role: m.Role, Content: m.Content}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	apiReq := anthropicRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
		TopP:      req.TopP,
		Stream:    stream,
	}
	// Anthropic caps temperature at 1.
	if req.Temperature > 0 {
		t := min(req.Temperature, 1.0)
		apiReq.Temperature = &t
	}
	return apiReq
}

func (a *AnthropicProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	apiReq := a.buildRequest(req, false)

	resp, err := postJSON(ctx, a.httpClient, "Anthropic", a.baseURL+"/messages", a.headers(), apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("anthropic decode: %w", err)
	}

	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("anthropic: %w", ErrNoResponse)
	}

	return &CompletionResponse{
		Content:      apiResp.Content[0].Text,
		Model:        apiReq.Model,
		FinishReason: apiResp.StopReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
	}, nil
}

func (a *AnthropicProvider) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamEvent, error) {
	resp, err := postJSON(ctx, a.httpClient, "Anthropic", a.baseURL+"/messages", a.headers(), a.buildRequest(req, true))
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)

	go func() {
		defer close(events)
		defer resp.Body.Close()

		var streamErr error
		err := readSSE(resp.Body, func(data string) bool {
			var event struct {
				Type  string `json:"type"`
				Delta struct {
					Text string `json:"text"`
				} `json:"delta"`
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal([]byte(data), &event); err != nil {
				return false
			}

			switch event.Type {
			case "content_block_delta":
				return !send(ctx, events, StreamEvent{Chunk: event.Delta.Text})
			case "message_stop":
				return true
			case "error":
				streamErr = fmt.Errorf("anthropic stream: %s", event.Error.Message)
				return true
			}
			return false
		})
		if streamErr != nil {
			err = streamErr
		}

		finish(ctx, events, err)
	}()

	return events, nil
}
