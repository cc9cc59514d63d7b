// Package openai wraps github.com/sashabaranov/go-openai behind the small
// chat-completion surface the pitch pipeline needs.
package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	sdk "github.com/sashabaranov/go-openai"
)

// Client performs chat completions.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest is our own request type for ChatCompletion.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Message is a single conversational message.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// ChatResponse is our own response type for ChatCompletion.
type ChatResponse struct {
	ID           string
	Model        string
	Content      string // first choice
	FinishReason string
	Usage        Usage
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Option configures the client.
type Option func(*sdk.ClientConfig)

// WithBaseURL points the client at a proxy or compatible endpoint.
func WithBaseURL(u string) Option {
	return func(c *sdk.ClientConfig) {
		c.BaseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *sdk.ClientConfig) {
		c.HTTPClient = hc
	}
}

// WithOrganization sets the OpenAI-Organization header.
func WithOrganization(org string) Option {
	return func(c *sdk.ClientConfig) {
		c.OrgID = org
	}
}

type sdkClient struct {
	api *sdk.Client
}

// NewClient creates an OpenAI client.
func NewClient(apiKey string, opts ...Option) Client {
	cfg := sdk.DefaultConfig(apiKey)
	for _, o := range opts {
		o(&cfg)
	}
	return &sdkClient{api: sdk.NewClientWithConfig(cfg)}
}

func (c *sdkClient) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	msgs := make([]sdk.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		role := m.Role
		if role == "" {
			role = sdk.ChatMessageRoleUser
		}
		msgs[i] = sdk.ChatCompletionMessage{Role: role, Content: m.Content}
	}

	resp, err := c.api.CreateChatCompletion(ctx, sdk.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "openai: create chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("openai: no completion choices")
	}

	return &ChatResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     int64(resp.Usage.PromptTokens),
			CompletionTokens: int64(resp.Usage.CompletionTokens),
			TotalTokens:      int64(resp.Usage.TotalTokens),
		},
	}, nil
}
