// Package llm abstracts the chat-completion capability the pipeline
// depends on. Callers treat every completion failure as recoverable and
// fall back to deterministic content; only a missing credential is fatal.
package llm

import (
	"context"
	"errors"
)

// Error kinds callers branch on with errors.Is.
var (
	// ErrMissingAPIKey means the completion capability cannot be
	// constructed at all. Fatal, never retried.
	ErrMissingAPIKey = errors.New("llm: api key not set")
	// ErrServiceUnavailable covers transport failures, timeouts, and
	// 5xx/429 responses.
	ErrServiceUnavailable = errors.New("llm: service unavailable")
	// ErrInvalidResponse covers replies that cannot be decoded or carry
	// no content.
	ErrInvalidResponse = errors.New("llm: invalid response")
)

// Message is one entry of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionService produces a text completion for an ordered message
// sequence.
type CompletionService interface {
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)
}
