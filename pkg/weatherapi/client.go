// Package weatherapi is a client for the WeatherAPI.com current-conditions
// and forecast endpoints.
package weatherapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "http://api.weatherapi.com/v1"

// Client fetches current conditions and multi-day forecasts. q is any
// location WeatherAPI accepts; callers pass "lat,lon".
type Client interface {
	Current(ctx context.Context, q string) (*CurrentResponse, error)
	Forecast(ctx context.Context, q string, days int) (*ForecastResponse, error)
}

// Condition is WeatherAPI's nested condition object.
type Condition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

// Current holds the fields of "current" the pipeline reads.
type Current struct {
	TempF     float64   `json:"temp_f"`
	Humidity  int       `json:"humidity"`
	WindMPH   float64   `json:"wind_mph"`
	Condition Condition `json:"condition"`
}

// CurrentResponse is the body of GET /current.json.
type CurrentResponse struct {
	Current Current `json:"current"`
}

// Day is the per-day aggregate of a forecast.
type Day struct {
	MaxTempF  float64   `json:"maxtemp_f"`
	MinTempF  float64   `json:"mintemp_f"`
	Condition Condition `json:"condition"`
}

// ForecastDay is one entry of forecast.forecastday.
type ForecastDay struct {
	Date string `json:"date"`
	Day  Day    `json:"day"`
}

// ForecastResponse is the body of GET /forecast.json.
type ForecastResponse struct {
	Current  Current `json:"current"`
	Forecast struct {
		ForecastDay []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a WeatherAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Coordinates formats a lat/lon pair as a WeatherAPI query.
func Coordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

func (c *httpClient) Current(ctx context.Context, q string) (*CurrentResponse, error) {
	var out CurrentResponse
	if err := c.get(ctx, "/current.json", url.Values{"q": {q}}, &out); err != nil {
		return nil, eris.Wrap(err, "weatherapi: current")
	}
	return &out, nil
}

func (c *httpClient) Forecast(ctx context.Context, q string, days int) (*ForecastResponse, error) {
	var out ForecastResponse
	params := url.Values{"q": {q}, "days": {strconv.Itoa(days)}}
	if err := c.get(ctx, "/forecast.json", params, &out); err != nil {
		return nil, eris.Wrap(err, "weatherapi: forecast")
	}
	return &out, nil
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Message != "" {
			return eris.Errorf("unexpected status %d: %s (code %d)", resp.StatusCode, ae.Error.Message, ae.Error.Code)
		}
		return eris.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
