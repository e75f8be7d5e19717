package conversation

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/ai-gateway/conversation-relay/internal/guardrails"
	"github.com/ai-gateway/conversation-relay/internal/metrics"
	"github.com/ai-gateway/conversation-relay/internal/provider"
)

// Generation parameters applied to every call.
const (
	MaxTokens   = 512
	Temperature = 0.7
	TopP        = 0.9
)

var tracer = otel.Tracer("github.com/ai-gateway/conversation-relay/internal/conversation")

// Settings is resolved once at startup and never changes afterwards.
type Settings struct {
	ModelID string
}

// Relay forwards a turn to the provider and returns the extended history.
// It keeps no state between calls and is safe for concurrent use.
type Relay struct {
	settings Settings
	provider provider.Provider
	guards   *guardrails.Guardrails
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewRelay(settings Settings, p provider.Provider, guards *guardrails.Guardrails, m *metrics.Metrics, logger *zap.Logger) *Relay {
	if guards == nil {
		guards = guardrails.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{settings: settings, provider: p, guards: guards, metrics: m, logger: logger}
}

// Handle makes exactly one provider call. On error no history is returned.
func (r *Relay) Handle(ctx context.Context, turn Turn) (*Result, error) {
	if err := turn.validate(); err != nil {
		r.observe(metrics.OutcomeInvalid)
		return nil, err
	}
	if err := r.guards.CheckInput(turn.Message); err != nil {
		r.observe(metrics.OutcomeInvalid)
		return nil, &ValidationError{Field: "message", Reason: err.Error()}
	}

	history := make([]Message, 0, len(turn.History)+2)
	history = append(history, turn.History...)
	history = append(history, Message{Role: RoleUser, Content: turn.Message})

	req := &provider.ChatRequest{
		Model:    r.settings.ModelID,
		Messages: make([]provider.Message, len(history)),
		Config: provider.InferenceConfig{
			MaxTokens:     MaxTokens,
			StopSequences: []string{},
			Temperature:   Temperature,
			TopP:          TopP,
		},
	}
	for i, m := range history {
		req.Messages[i] = provider.Message{Role: string(m.Role), Content: m.Content}
	}

	resp, err := r.call(ctx, req)
	if err != nil {
		if errors.Is(err, provider.ErrMalformedResponse) {
			r.observe(metrics.OutcomeMalformed)
		} else {
			r.observe(metrics.OutcomeProviderError)
		}
		r.logger.Warn("provider call failed",
			zap.String("model", r.settings.ModelID),
			zap.Int("history_len", len(turn.History)),
			zap.Error(err))
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.AddTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	r.observe(metrics.OutcomeSuccess)

	history = append(history, Message{Role: RoleAssistant, Content: resp.Message.Content})
	return &Result{Response: resp.Message.Content, History: history}, nil
}

func (r *Relay) call(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	ctx, span := tracer.Start(ctx, "provider.chat")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.messages", len(req.Messages)),
	)

	start := time.Now()
	resp, err := r.provider.Chat(ctx, req)
	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.ObserveProviderCall(elapsed)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("llm.stop_reason", resp.StopReason),
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)
	r.logger.Debug("provider call",
		zap.String("model", req.Model),
		zap.Duration("elapsed", elapsed),
		zap.String("stop_reason", resp.StopReason))
	return resp, nil
}

func (r *Relay) observe(outcome string) {
	if r.metrics != nil {
		r.metrics.ObserveRequest(outcome)
	}
}
