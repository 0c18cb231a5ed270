// Package llm wraps the Groq chat-completions API (OpenAI-compatible).
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "llama3-70b-8192"
	// DefaultTimeout bounds a single completion request so a stalled
	// upstream call cannot hang the caller.
	DefaultTimeout = 60 * time.Second

	// Sampling temperatures per mode, matching the prompt design: plan
	// generation wants near-deterministic JSON, chat can be looser.
	jsonModeTemperature  = 0.2
	plainModeTemperature = 0.3
)

// ChatCompletionAPI defines the interface for chat completion calls
type ChatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client sends role-tagged message lists to the completion endpoint and
// returns the assistant's text. It performs no retries; retry policy is the
// caller's responsibility.
type Client struct {
	api   ChatCompletionAPI
	model string
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a completion client using defaults for everything but
// the API key.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a completion client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Complete sends the messages to the completion endpoint and returns the
// first choice's content. When jsonMode is set the model is asked for a
// json_object response. All upstream failures surface as a single
// UPSTREAM_ERROR domain error carrying the status and body for diagnostics.
func (c *Client) Complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: plainModeTemperature,
	}
	if jsonMode {
		req.Temperature = jsonModeTemperature
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrCompletionEmpty
	}

	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}

func wrapUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewDomainErrorWithCause(
			domain.ErrCodeUpstream,
			fmt.Sprintf("completion failed: status %d: %s", apiErr.HTTPStatusCode, apiErr.Message),
			err,
		)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return domain.NewDomainErrorWithCause(
			domain.ErrCodeUpstream,
			fmt.Sprintf("completion failed: status %d", reqErr.HTTPStatusCode),
			err,
		)
	}

	return domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "completion failed", err)
}
