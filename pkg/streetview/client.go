// Package streetview fetches Google Street View Static API images.
package streetview

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/streetview"
	defaultSize    = "600x300"
)

// Client fetches a street-level image for a coordinate.
type Client interface {
	Image(ctx context.Context, lat, lon float64) ([]byte, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithSize sets the image size as "WIDTHxHEIGHT".
func WithSize(size string) Option {
	return func(c *httpClient) {
		c.size = size
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
	size    string
	http    *http.Client
}

// NewClient creates a Street View client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		size:    defaultSize,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Image returns the raw image bytes (JPEG) for the coordinate.
func (c *httpClient) Image(ctx context.Context, lat, lon float64) ([]byte, error) {
	params := url.Values{
		"size":     {c.size},
		"location": {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)},
		"key":      {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("streetview: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, eris.Errorf("streetview: unexpected content type %q", ct)
	}

	return body, nil
}
