// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/quill/internal/llm"
)

// Provider replays fixed chunks or a fixed reply and records requests.
type Provider struct {
	// Chunks are streamed in order, followed by Done.
	Chunks []string
	// Reply is returned by Complete.
	Reply string
	// StreamErr fails Stream setup; MidStreamErr is sent after Chunks.
	StreamErr    error
	MidStreamErr error
	CompleteErr  error
	PingErr      error

	mu       sync.Mutex
	requests []*llm.CompletionRequest
}

func (p *Provider) Name() string { return "scripted" }

func (p *Provider) record(req *llm.CompletionRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
}

// Requests returns the requests seen so far.
func (p *Provider) Requests() []*llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*llm.CompletionRequest(nil), p.requests...)
}

// Last returns the most recent request or nil.
func (p *Provider) Last() *llm.CompletionRequest {
	reqs := p.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

func (p *Provider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.record(req)
	if p.CompleteErr != nil {
		return nil, p.CompleteErr
	}
	return &llm.CompletionResponse{Content: p.Reply, Model: req.Model}, nil
}

func (p *Provider) Stream(ctx context.Context, req *llm.CompletionRequest) (<-chan llm.StreamEvent, error) {
	p.record(req)
	if p.StreamErr != nil {
		return nil, p.StreamErr
	}

	events := make(chan llm.StreamEvent)
	go func() {
		defer close(events)
		for _, c := range p.Chunks {
			select {
			case events <- llm.StreamEvent{Chunk: c}:
			case <-ctx.Done():
				return
			}
		}
		last := llm.StreamEvent{Done: true}
		if p.MidStreamErr != nil {
			last = llm.StreamEvent{Error: p.MidStreamErr}
		}
		select {
		case events <- last:
		case <-ctx.Done():
		}
	}()
	return events, nil
}

func (p *Provider) Ping(ctx context.Context) error { return p.PingErr }

var _ llm.Provider = (*Provider)(nil)
