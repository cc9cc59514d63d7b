package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mowradar/internal/config"
	"github.com/sells-group/mowradar/internal/pipeline"
	anthropicpkg "github.com/sells-group/mowradar/pkg/anthropic"
	"github.com/sells-group/mowradar/pkg/geocode"
	openaipkg "github.com/sells-group/mowradar/pkg/openai"
	"github.com/sells-group/mowradar/pkg/streetview"
	"github.com/sells-group/mowradar/pkg/weatherapi"
)

// initPipeline validates config for mode and builds the Pipeline with all
// API clients. In "preview" mode no narration client is created.
func initPipeline(c *config.Config, mode string) (*pipeline.Pipeline, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	hc := httpClient(c)

	forwarder := geocode.NewForwarder(c.Geocode.Key,
		geocode.WithBaseURL(c.Geocode.BaseURL),
		geocode.WithCountryCode(c.Geocode.CountryCode),
		geocode.WithHTTPClient(hc),
	)
	reverser := geocode.NewReverser(
		geocode.WithBaseURL(c.Geocode.ReverseURL),
		geocode.WithUserAgent(c.Geocode.UserAgent),
		geocode.WithRateLimit(c.Geocode.ReverseRPS),
		geocode.WithHTTPClient(hc),
	)
	weatherClient := weatherapi.NewClient(c.Weather.Key,
		weatherapi.WithBaseURL(c.Weather.BaseURL),
		weatherapi.WithHTTPClient(hc),
	)

	var narrator pipeline.NarrationClient
	if mode != "preview" {
		n, err := newNarrator(c, hc)
		if err != nil {
			return nil, err
		}
		narrator = n
	}

	return pipeline.New(c,
		pipeline.NewGeocodeResolver(forwarder, reverser),
		pipeline.NewWeatherAPIContext(weatherClient),
		narrator,
	), nil
}

func newNarrator(c *config.Config, hc *http.Client) (pipeline.NarrationClient, error) {
	switch c.Narration.Provider {
	case "openai":
		opts := []openaipkg.Option{openaipkg.WithHTTPClient(hc)}
		if c.OpenAI.BaseURL != "" {
			opts = append(opts, openaipkg.WithBaseURL(c.OpenAI.BaseURL))
		}
		if c.OpenAI.Organization != "" {
			opts = append(opts, openaipkg.WithOrganization(c.OpenAI.Organization))
		}
		return pipeline.NewOpenAINarrator(openaipkg.NewClient(c.OpenAI.Key, opts...)), nil
	case "anthropic":
		opts := []anthropicpkg.Option{anthropicpkg.WithHTTPClient(hc)}
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, anthropicpkg.WithBaseURL(c.Anthropic.BaseURL))
		}
		return pipeline.NewAnthropicNarrator(anthropicpkg.NewClient(c.Anthropic.Key, opts...)), nil
	default:
		return nil, eris.Errorf("unknown narration provider %q", c.Narration.Provider)
	}
}

// newStreetView returns nil when no key is configured.
func newStreetView(c *config.Config) streetview.Client {
	if c.StreetView.Key == "" {
		return nil
	}
	return streetview.NewClient(c.StreetView.Key,
		streetview.WithBaseURL(c.StreetView.BaseURL),
		streetview.WithSize(c.StreetView.Size),
		streetview.WithHTTPClient(httpClient(c)),
	)
}

func httpClient(c *config.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(c.HTTP.TimeoutSecs) * time.Second}
}
