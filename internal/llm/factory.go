package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewClient creates an LLM client based on the provided configuration.
// When cfg.RateLimit is set, the client is wrapped with a token bucket
// limiting requests per minute.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = &rateLimitedClient{
			inner:   client,
			limiter: newRateLimiter(cfg.RateLimit),
		}
	}

	return client, nil
}

// rateLimitedClient throttles an inner client with a token bucket.
type rateLimitedClient struct {
	inner   Client
	limiter *rateLimiter
}

func (c *rateLimitedClient) Chat(ctx context.Context, systemPrompt string, history []Message, message string) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.inner.Chat(ctx, systemPrompt, history, message)
}

// Close stops the limiter's refill goroutine.
func (c *rateLimitedClient) Close() error {
	c.limiter.Close()
	return nil
}
