package llm

import (
	"context"
	"errors"
	"testing"
)

// cannedProvider returns a fixed response, including usage.
type cannedProvider struct {
	response LLMResponse
	err      error
}

func (c *cannedProvider) Name() string  { return "canned" }
func (c *cannedProvider) Model() string { return "canned-1" }

func (c *cannedProvider) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	return c.response, c.err
}

func (c *cannedProvider) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error) {
	return c.response, c.err
}

func TestClientChatReturnsContent(t *testing.T) {
	c := NewClient(&cannedProvider{response: LLMResponse{Content: "hi"}})

	got, err := c.Chat(context.Background(), []ChatMessage{UserMessage("hello")})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "hi" {
		t.Errorf("content = %q, want %q", got, "hi")
	}
}

func TestClientChatWithFormatReturnsUsage(t *testing.T) {
	usage := &TokenUsage{PromptTokens: 3, CompletionTokens: 5, TotalTokens: 8}
	c := NewClient(&cannedProvider{response: LLMResponse{Content: "{}", Usage: usage}})

	content, gotUsage, err := c.ChatWithFormat(context.Background(), []ChatMessage{UserMessage("hello")}, NewJSONObjectFormat())
	if err != nil {
		t.Fatalf("ChatWithFormat failed: %v", err)
	}
	if content != "{}" {
		t.Errorf("content = %q, want %q", content, "{}")
	}
	if gotUsage == nil || gotUsage.TotalTokens != 8 {
		t.Errorf("usage = %+v, want total 8", gotUsage)
	}
}

func TestClientPropagatesErrors(t *testing.T) {
	wantErr := errors.New("boom")
	c := NewClient(&cannedProvider{err: wantErr})

	if _, err := c.Chat(context.Background(), nil); !errors.Is(err, wantErr) {
		t.Errorf("Chat error = %v, want %v", err, wantErr)
	}
	if _, _, err := c.ChatWithFormat(context.Background(), nil, nil); !errors.Is(err, wantErr) {
		t.Errorf("ChatWithFormat error = %v, want %v", err, wantErr)
	}

	if c.Provider().Name() != "canned" {
		t.Errorf("provider name = %q", c.Provider().Name())
	}
}
