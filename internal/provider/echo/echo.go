package echo

import (
	"context"

	"github.com/ai-gateway/conversation-relay/internal/provider"
)

// Provider responds by echoing the last user message.
type Provider struct{}

func New() *Provider { return &Provider{} }

var _ provider.Provider = (*Provider)(nil)

func (p *Provider) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &provider.Error{Provider: "echo", Err: err}
	}
	var last string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i].Content
			break
		}
	}
	return &provider.ChatResponse{
		Message:    provider.Message{Role: "assistant", Content: "Echo: " + last},
		StopReason: "end_turn",
	}, nil
}
