package pipeline

import (
	"context"
	"strings"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/pkg/anthropic"
	"github.com/sells-group/mowradar/pkg/openai"
)

// Narration defaults.
const (
	DefaultNarrationModel       = "gpt-4o"
	DefaultNarrationTemperature = 0.85
	DefaultNarrationMaxTokens   = 500
)

// NarrationClient generates pitch copy from a prompt. Implementations make
// exactly one backend call and never retry.
type NarrationClient interface {
	Generate(ctx context.Context, prompt model.PitchPrompt, modelID string, temperature float64, maxOutputTokens int) (*model.NarrationResult, error)
}

// OpenAINarrator generates copy with the chat completions API.
type OpenAINarrator struct {
	client openai.Client
}

// NewOpenAINarrator creates an OpenAINarrator.
func NewOpenAINarrator(client openai.Client) *OpenAINarrator {
	return &OpenAINarrator{client: client}
}

// Generate implements NarrationClient.
func (n *OpenAINarrator) Generate(ctx context.Context, prompt model.PitchPrompt, modelID string, temperature float64, maxOutputTokens int) (*model.NarrationResult, error) {
	resp, err := n.client.ChatCompletion(ctx, openai.ChatRequest{
		Model:       modelID,
		Messages:    []openai.Message{{Role: "user", Content: string(prompt)}},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return nil, &GenerationError{Message: "openai request failed", Err: err}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, &GenerationError{Message: "openai returned empty content"}
	}

	usedModel := resp.Model
	if usedModel == "" {
		usedModel = modelID
	}
	return &model.NarrationResult{
		Text:             text,
		Model:            usedModel,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// AnthropicNarrator generates copy with the Messages API.
type AnthropicNarrator struct {
	client anthropic.Client
}

// NewAnthropicNarrator creates an AnthropicNarrator.
func NewAnthropicNarrator(client anthropic.Client) *AnthropicNarrator {
	return &AnthropicNarrator{client: client}
}

// Generate implements NarrationClient.
func (n *AnthropicNarrator) Generate(ctx context.Context, prompt model.PitchPrompt, modelID string, temperature float64, maxOutputTokens int) (*model.NarrationResult, error) {
	temp := temperature
	resp, err := n.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       modelID,
		MaxTokens:   int64(maxOutputTokens),
		Messages:    []anthropic.Message{{Role: "user", Content: string(prompt)}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, &GenerationError{Message: "anthropic request failed", Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, &GenerationError{Message: "anthropic returned empty content"}
	}

	usedModel := resp.Model
	if usedModel == "" {
		usedModel = modelID
	}
	return &model.NarrationResult{
		Text:             text,
		Model:            usedModel,
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
		TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}
