package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ResponseError is the single failure kind for completion calls: timeout,
// transport error and empty completion all surface as this, with the
// underlying cause attached for diagnostics. Calls are never retried here;
// the caller sees a failed send and may resubmit.
type ResponseError struct {
	Cause error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("ai response failure: %v", e.Cause)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend
type Provider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}
