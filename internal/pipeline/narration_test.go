package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/pkg/anthropic"
	"github.com/sells-group/mowradar/pkg/openai"
)

const testPrompt = model.PitchPrompt("Write exactly 2 short talking points.")

func TestOpenAINarrator_Generate(t *testing.T) {
	client := &mockOpenAI{}
	client.On("ChatCompletion", mock.Anything, openai.ChatRequest{
		Model:       "gpt-4o",
		Messages:    []openai.Message{{Role: "user", Content: string(testPrompt)}},
		Temperature: 0.85,
		MaxTokens:   500,
	}).Return(&openai.ChatResponse{
		Model:   "gpt-4o-2024-08-06",
		Content: "  Trim those bushes before the heat wave.\n",
		Usage:   openai.Usage{PromptTokens: 412, CompletionTokens: 58, TotalTokens: 470},
	}, nil)

	res, err := NewOpenAINarrator(client).Generate(context.Background(), testPrompt, "gpt-4o", 0.85, 500)
	require.NoError(t, err)
	assert.Equal(t, "Trim those bushes before the heat wave.", res.Text)
	assert.Equal(t, "gpt-4o-2024-08-06", res.Model)
	assert.Equal(t, int64(412), res.PromptTokens)
	assert.Equal(t, int64(58), res.CompletionTokens)
	assert.Equal(t, int64(470), res.TotalTokens)
	client.AssertExpectations(t)
}

func TestOpenAINarrator_ModelFallback(t *testing.T) {
	client := &mockOpenAI{}
	client.On("ChatCompletion", mock.Anything, mock.Anything).Return(&openai.ChatResponse{Content: "ok"}, nil)

	res, err := NewOpenAINarrator(client).Generate(context.Background(), testPrompt, "gpt-4o", 0.85, 500)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", res.Model)
}

func TestOpenAINarrator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *openai.ChatResponse
		err     error
		wantMsg string
	}{
		{name: "transport", err: errors.New("openai: chat completion: 500"), wantMsg: "openai request failed"},
		{name: "empty content", resp: &openai.ChatResponse{Content: "   "}, wantMsg: "openai returned empty content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockOpenAI{}
			if tt.resp != nil {
				client.On("ChatCompletion", mock.Anything, mock.Anything).Return(tt.resp, nil).Once()
			} else {
				client.On("ChatCompletion", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			_, err := NewOpenAINarrator(client).Generate(context.Background(), testPrompt, "gpt-4o", 0.85, 500)
			require.Error(t, err)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tt.wantMsg, genErr.Message)
			assert.Equal(t, KindGeneration, Kind(err))
			client.AssertNumberOfCalls(t, "ChatCompletion", 1)
		})
	}
}

func TestAnthropicNarrator_Generate(t *testing.T) {
	client := &mockAnthropic{}
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-haiku-4-5-20251001" &&
			req.MaxTokens == 500 &&
			len(req.Messages) == 1 &&
			req.Messages[0].Role == "user" &&
			req.Messages[0].Content == string(testPrompt) &&
			req.Temperature != nil && *req.Temperature == 0.85
	})).Return(&anthropic.MessageResponse{
		Model:   "claude-haiku-4-5-20251001",
		Content: []anthropic.ContentBlock{{Type: "text", Text: "Mosquitoes love this humidity."}},
		Usage:   anthropic.TokenUsage{InputTokens: 300, OutputTokens: 40},
	}, nil)

	res, err := NewAnthropicNarrator(client).Generate(context.Background(), testPrompt, "claude-haiku-4-5-20251001", 0.85, 500)
	require.NoError(t, err)
	assert.Equal(t, "Mosquitoes love this humidity.", res.Text)
	assert.Equal(t, int64(300), res.PromptTokens)
	assert.Equal(t, int64(40), res.CompletionTokens)
	assert.Equal(t, int64(340), res.TotalTokens)
	client.AssertExpectations(t)
}

func TestAnthropicNarrator_EmptyText(t *testing.T) {
	client := &mockAnthropic{}
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(&anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "tool_use"}},
	}, nil)

	_, err := NewAnthropicNarrator(client).Generate(context.Background(), testPrompt, "m", 0.85, 500)
	require.Error(t, err)
	assert.Equal(t, KindGeneration, Kind(err))
}

func TestAnthropicNarrator_TransportError(t *testing.T) {
	client := &mockAnthropic{}
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, errors.New("overloaded"))

	_, err := NewAnthropicNarrator(client).Generate(context.Background(), testPrompt, "m", 0.85, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
	client.AssertNumberOfCalls(t, "CreateMessage", 1)
}
