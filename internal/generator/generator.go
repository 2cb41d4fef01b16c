// Package generator holds clients for the external generative-content provider.
// Every client performs exactly one attempt per call; callers own fallback.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is a chat-style completion request.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Generator returns free-form completion text for a request.
// Any returned error is a transport failure: network, timeout or non-2xx status.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// ErrDisabled is returned by Disabled for every call.
var ErrDisabled = errors.New("content generator disabled")

// StatusError reports a non-success HTTP status from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generator request failed with status %d: %s", e.StatusCode, e.Body)
}

// Disabled is used when no provider is configured; every card falls back to templates.
type Disabled struct{}

func (Disabled) Complete(context.Context, Request) (string, error) { return "", ErrDisabled }
func (Disabled) Name() string                                     { return "none" }

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// New builds the generator named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", "none":
		return Disabled{}, nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

// withTimeout applies the client's bound when the caller set no deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
