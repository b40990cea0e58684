package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// RetryConfig controls retry behaviour for provider calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
	}
}

func (c RetryConfig) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("retry: max_retries must be >= 0")
	}
	if c.InitialBackoff <= 0 {
		return errors.New("retry: initial_backoff must be > 0")
	}
	if c.MaxBackoff <= 0 {
		return errors.New("retry: max_backoff must be > 0")
	}
	if c.Multiplier < 1.0 {
		return errors.New("retry: multiplier must be >= 1.0")
	}
	return nil
}

// IsRetryable reports whether err is a transient failure: 429, 5xx,
// network timeouts, refused connections and truncated bodies.
// Context cancellation is never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "EOF")
}

// RetryProvider wraps a Provider and retries Complete, Stream setup and Ping
// on transient errors with exponential backoff. Chunks already delivered on
// a stream are never replayed.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewRetryProvider(inner Provider, cfg RetryConfig, logger *slog.Logger) *RetryProvider {
	if inner == nil {
		panic("llm: retry inner provider must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryProvider{
		inner:  inner,
		config: cfg,
		logger: logger,
		sleep:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *RetryProvider) Name() string {
	return r.inner.Name()
}

// Unwrap returns the decorated provider.
func (r *RetryProvider) Unwrap() Provider {
	return r.inner
}

func (r *RetryProvider) do(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	backoff := r.config.InitialBackoff

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if attempt == r.config.MaxRetries {
			break
		}

		r.logger.Warn("provider call failed, retrying",
			"provider", r.inner.Name(),
			"op", op,
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err,
		)
		if err := r.sleep(ctx, backoff); err != nil {
			return err
		}

		backoff = min(time.Duration(float64(backoff)*r.config.Multiplier), r.config.MaxBackoff)
	}

	return fmt.Errorf("retries exhausted after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *RetryProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	var resp *CompletionResponse
	err := r.do(ctx, "complete", func() error {
		var err error
		resp, err = r.inner.Complete(ctx, req)
		return err
	})
	return resp, err
}

func (r *RetryProvider) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamEvent, error) {
	var events <-chan StreamEvent
	err := r.do(ctx, "stream", func() error {
		var err error
		events, err = r.inner.Stream(ctx, req)
		return err
	})
	return events, err
}

func (r *RetryProvider) Ping(ctx context.Context) error {
	return r.do(ctx, "ping", func() error {
		return r.inner.Ping(ctx)
	})
}

var _ Provider = (*RetryProvider)(nil)
