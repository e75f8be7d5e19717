package provider

import (
	"context"
	"errors"
	"fmt"
)

// Message is a single chat turn in provider-neutral form.
type Message struct {
	Role    string
	Content string
}

// InferenceConfig holds the generation parameters sent with every request.
type InferenceConfig struct {
	MaxTokens     int
	StopSequences []string
	Temperature   float64
	TopP          float64
}

// ChatRequest is one non-streaming generation call.
type ChatRequest struct {
	Model    string
	Messages []Message
	Config   InferenceConfig
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ChatResponse carries the assistant reply of a single call.
type ChatResponse struct {
	Message    Message
	StopReason string
	Usage      Usage
}

// Provider handles LLM operations. Implementations make exactly one
// outbound attempt per Chat call.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ErrMalformedResponse is returned when the provider answered but the body
// does not carry the expected reply text.
var ErrMalformedResponse = errors.New("malformed provider response")

// Error reports a transport or service failure of the remote call.
type Error struct {
	Provider string
	// Unavailable is set for throttling and service-unavailable failures.
	Unavailable bool
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
