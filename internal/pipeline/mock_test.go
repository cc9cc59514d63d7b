package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/pkg/anthropic"
	"github.com/sells-group/mowradar/pkg/geocode"
	"github.com/sells-group/mowradar/pkg/openai"
	"github.com/sells-group/mowradar/pkg/weatherapi"
)

// --- Pipeline interface mocks ---

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, query string) (*model.Place, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

type mockWeather struct {
	mock.Mock
}

func (m *mockWeather) Fetch(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeatherSnapshot), args.Error(1)
}

type mockNarrator struct {
	mock.Mock
}

func (m *mockNarrator) Generate(ctx context.Context, prompt model.PitchPrompt, modelID string, temperature float64, maxOutputTokens int) (*model.NarrationResult, error) {
	args := m.Called(ctx, prompt, modelID, temperature, maxOutputTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NarrationResult), args.Error(1)
}

// --- Geocode mocks ---

type mockForwarder struct {
	mock.Mock
}

func (m *mockForwarder) Forward(ctx context.Context, query string) (*geocode.ForwardResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.ForwardResult), args.Error(1)
}

type mockReverser struct {
	mock.Mock
}

func (m *mockReverser) Reverse(ctx context.Context, lat, lon float64) (*geocode.Address, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Address), args.Error(1)
}

// --- WeatherAPI mock ---

type mockWeatherAPI struct {
	mock.Mock
}

func (m *mockWeatherAPI) Current(ctx context.Context, q string) (*weatherapi.CurrentResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherapi.CurrentResponse), args.Error(1)
}

func (m *mockWeatherAPI) Forecast(ctx context.Context, q string, days int) (*weatherapi.ForecastResponse, error) {
	args := m.Called(ctx, q, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherapi.ForecastResponse), args.Error(1)
}

// --- Text generation mocks ---

type mockOpenAI struct {
	mock.Mock
}

func (m *mockOpenAI) ChatCompletion(ctx context.Context, req openai.ChatRequest) (*openai.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openai.ChatResponse), args.Error(1)
}

type mockAnthropic struct {
	mock.Mock
}

func (m *mockAnthropic) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}
