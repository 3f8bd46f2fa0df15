package llm

import (
	"context"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends a system prompt, prior history, and the new user message,
	// and returns the model's free-form reply text.
	Chat(ctx context.Context, systemPrompt string, history []Message, message string) (string, error)
}

// Config holds configuration for LLM clients. Retry policy lives with the
// caller; clients only shape and send requests.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	RateLimit   int
	Temperature float64
	MaxTokens   int
}
