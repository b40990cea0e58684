package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeProvider struct {
	errs  []error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) next() error {
	f.calls++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	return &CompletionResponse{Content: "ok"}, nil
}

func (f *fakeProvider) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamEvent, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	ch := make(chan StreamEvent, 1)
	ch <- StreamEvent{Done: true}
	close(ch)
	return ch, nil
}

func (f *fakeProvider) Ping(ctx context.Context) error { return f.next() }

func newTestRetry(inner Provider, maxRetries int) (*RetryProvider, *[]time.Duration) {
	var slept []time.Duration
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = maxRetries
	r := NewRetryProvider(inner, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return r, &slept
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), false},
		{"429", &StatusError{StatusCode: 429}, true},
		{"503", &StatusError{StatusCode: 503}, true},
		{"401", &StatusError{StatusCode: 401}, false},
		{"400", fmt.Errorf("wrap: %w", &StatusError{StatusCode: 400}), false},
		{"refused", errors.New("dial tcp: connection refused"), true},
		{"eof", errors.New("unexpected EOF"), true},
		{"other", errors.New("invalid API key"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryProvider_RecoversFromTransientErrors(t *testing.T) {
	inner := &fakeProvider{errs: []error{
		&StatusError{StatusCode: 503},
		&StatusError{StatusCode: 429},
	}}
	r, slept := newTestRetry(inner, 3)

	resp, err := r.Complete(context.Background(), &CompletionRequest{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "ok" || inner.calls != 3 {
		t.Errorf("resp = %+v calls = %d", resp, inner.calls)
	}
	want := []time.Duration{500 * time.Millisecond, time.Second}
	if len(*slept) != 2 || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Errorf("backoff = %v, want %v", *slept, want)
	}
}

func TestRetryProvider_StopsOnPermanentError(t *testing.T) {
	inner := &fakeProvider{errs: []error{&StatusError{StatusCode: 401}}}
	r, _ := newTestRetry(inner, 3)

	_, err := r.Stream(context.Background(), &CompletionRequest{})
	if err == nil || inner.calls != 1 {
		t.Fatalf("err = %v calls = %d", err, inner.calls)
	}
}

func TestRetryProvider_Exhausted(t *testing.T) {
	transient := &StatusError{StatusCode: 502}
	inner := &fakeProvider{errs: []error{transient, transient, transient}}
	r, _ := newTestRetry(inner, 2)

	err := r.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Errorf("last error not wrapped: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryProvider_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &fakeProvider{errs: []error{&StatusError{StatusCode: 500}}}
	r, _ := newTestRetry(inner, 3)

	_, err := r.Complete(ctx, &CompletionRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRetryConfig_Validate(t *testing.T) {
	if err := DefaultRetryConfig().Validate(); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
	bad := DefaultRetryConfig()
	bad.Multiplier = 0.5
	if bad.Validate() == nil {
		t.Error("expected error for multiplier < 1")
	}
}
