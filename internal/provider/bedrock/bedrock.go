// Package bedrock calls Amazon Bedrock InvokeModel with the Nova message
// schema.
package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/tidwall/gjson"

	"github.com/ai-gateway/conversation-relay/internal/provider"
)

const (
	name        = "bedrock"
	contentType = "application/json"
)

// Invoker is the subset of the Bedrock runtime client used here.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Config struct {
	Region string
}

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	api Invoker
}

var _ provider.Provider = (*Client)(nil)

// New builds a client from the ambient AWS credential chain. The SDK retryer
// is limited to a single attempt so each Chat makes exactly one call.
func New(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithInvoker(bedrockruntime.NewFromConfig(awsCfg)), nil
}

func NewWithInvoker(api Invoker) *Client {
	return &Client{api: api}
}

func (c *Client) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	body, err := buildBody(req)
	if err != nil {
		return nil, err
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(req.Model),
		Body:        body,
		ContentType: aws.String(contentType),
		Accept:      aws.String(contentType),
	})
	if err != nil {
		return nil, &provider.Error{Provider: name, Unavailable: isUnavailable(err), Err: err}
	}
	return parseResponse(out.Body)
}

type textBlock struct {
	Text string `json:"text"`
}

type novaMessage struct {
	Role    string      `json:"role"`
	Content []textBlock `json:"content"`
}

type inferenceConfig struct {
	MaxTokens     int      `json:"maxTokens"`
	StopSequences []string `json:"stopSequences"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"topP"`
}

type requestBody struct {
	System          []textBlock     `json:"system,omitempty"`
	Messages        []novaMessage   `json:"messages"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

// buildBody renders the Nova request. System turns go to the top-level
// system field since Nova only accepts user and assistant in messages.
func buildBody(req *provider.ChatRequest) ([]byte, error) {
	rb := requestBody{
		Messages: make([]novaMessage, 0, len(req.Messages)),
		InferenceConfig: inferenceConfig{
			MaxTokens:     req.Config.MaxTokens,
			StopSequences: req.Config.StopSequences,
			Temperature:   req.Config.Temperature,
			TopP:          req.Config.TopP,
		},
	}
	if rb.InferenceConfig.StopSequences == nil {
		rb.InferenceConfig.StopSequences = []string{}
	}
	for _, m := range req.Messages {
		if m.Role == "system" {
			rb.System = append(rb.System, textBlock{Text: m.Content})
			continue
		}
		rb.Messages = append(rb.Messages, novaMessage{
			Role:    m.Role,
			Content: []textBlock{{Text: m.Content}},
		})
	}

	body, err := json.Marshal(rb)
	if err != nil {
		return nil, fmt.Errorf("encode bedrock request: %w", err)
	}
	return body, nil
}

func parseResponse(body []byte) (*provider.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", provider.ErrMalformedResponse)
	}
	res := gjson.ParseBytes(body)

	text := res.Get("output.message.content.0.text")
	if !text.Exists() || text.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing output.message.content[0].text", provider.ErrMalformedResponse)
	}

	role := res.Get("output.message.role").String()
	if role == "" {
		role = "assistant"
	}
	return &provider.ChatResponse{
		Message:    provider.Message{Role: role, Content: text.String()},
		StopReason: res.Get("stopReason").String(),
		Usage: provider.Usage{
			InputTokens:  int(res.Get("usage.inputTokens").Int()),
			OutputTokens: int(res.Get("usage.outputTokens").Int()),
		},
	}, nil
}

func isUnavailable(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "ServiceUnavailableException", "ModelNotReadyException":
		return true
	}
	return false
}
