// Package narrative produces the natural-language layer of a persona
// analysis: the persona summary and per-perceiver feedback. Text comes from
// an external LLM provider when one is configured and healthy, and from
// deterministic templates otherwise. Callers always get usable text; provider
// failure is recovered, never surfaced.
package narrative

import "context"

// Message is one turn of a chat-style prompt.
type Message struct {
	Role    string // "system" or "user"
	Content string
}

// Provider generates text from a chat-style prompt.
type Provider interface {
	// Name identifies the provider in responses and logs.
	Name() string
	// Generate returns the completion text for the prompt.
	Generate(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
