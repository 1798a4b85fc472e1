// Content-first wrapper around a provider.

package llm

import (
	"context"
)

// Client adapts a Provider to the calls the assistant makes: callers
// get the reply text and token usage without unpacking the full
// response envelope.
type Client struct {
	provider Provider
}

// NewClient creates a client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Chat sends a chat completion request and returns just the content.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	response, err := c.provider.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// ChatWithFormat sends a chat completion request with a response
// format, returning the content and token usage. Usage may be nil when
// the provider does not report it.
func (c *Client) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (string, *TokenUsage, error) {
	response, err := c.provider.ChatWithFormat(ctx, messages, format)
	if err != nil {
		return "", nil, err
	}
	return response.Content, response.Usage, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
