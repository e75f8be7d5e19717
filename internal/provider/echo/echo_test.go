package echo

import (
	"context"
	"errors"
	"testing"

	"github.com/ai-gateway/conversation-relay/internal/provider"
)

func TestChatEchoesLastUserMessage(t *testing.T) {
	resp, err := New().Chat(context.Background(), &provider.ChatRequest{
		Messages: []provider.Message{
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "reply"},
			{Role: "user", Content: "second"},
		},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Message.Role != "assistant" || resp.Message.Content != "Echo: second" {
		t.Fatalf("unexpected reply %+v", resp.Message)
	}
}

func TestChatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Chat(ctx, &provider.ChatRequest{})
	var pe *provider.Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
