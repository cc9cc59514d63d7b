// Package geocode provides forward geocoding via OpenCage and reverse
// geocoding via Nominatim (OpenStreetMap).
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ErrNoResults is returned by Forward when the geocoder matched nothing.
var ErrNoResults = eris.New("geocode: no results")

// Forwarder turns a free-text address or postal code into coordinates.
type Forwarder interface {
	Forward(ctx context.Context, query string) (*ForwardResult, error)
}

// Reverser recovers the address hierarchy for a coordinate.
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (*Address, error)
}

// ForwardResult is the highest-confidence forward match.
type ForwardResult struct {
	Latitude   float64
	Longitude  float64
	Formatted  string
	Confidence int // OpenCage confidence, 0-10
}

// Address is the reverse-geocoded hierarchy. Fields the service did not
// return are "".
type Address struct {
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	County        string `json:"county"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	CountryCode   string `json:"country_code"`
}

// Option configures a geocoding client.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	baseURL     string
	countryCode string
	userAgent   string
	limiter     *rate.Limiter
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithBaseURL overrides the service endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithCountryCode restricts forward matches to one ISO 3166-1 alpha-2 country.
func WithCountryCode(cc string) Option {
	return func(o *options) {
		o.countryCode = cc
	}
}

// WithUserAgent sets the client identifier sent to Nominatim.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithRateLimit sets the requests-per-second ceiling.
func WithRateLimit(rps float64) Option {
	return func(o *options) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func newOptions(baseURL string, rps float64, opts []Option) *options {
	o := &options{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		countryCode: "us",
		userAgent:   defaultUserAgent,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
