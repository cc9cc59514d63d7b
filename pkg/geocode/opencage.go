package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

const openCageURL = "https://api.opencagedata.com/geocode/v1/json"

type openCageResponse struct {
	Results []openCageResult `json:"results"`
	Status  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

type openCageResult struct {
	Geometry struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"geometry"`
	Formatted  string `json:"formatted"`
	Confidence int    `json:"confidence"`
}

type openCage struct {
	apiKey string
	*options
}

// NewForwarder creates an OpenCage forward geocoder. Matches are restricted
// to the US unless WithCountryCode says otherwise.
func NewForwarder(apiKey string, opts ...Option) Forwarder {
	return &openCage{
		apiKey:  apiKey,
		options: newOptions(openCageURL, 10, opts),
	}
}

// Forward returns the first (highest-confidence) OpenCage result, or
// ErrNoResults when there is none.
func (c *openCage) Forward(ctx context.Context, query string) (*ForwardResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: opencage rate limit")
	}

	params := url.Values{
		"q":           {query},
		"key":         {c.apiKey},
		"countrycode": {c.countryCode},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: opencage build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: opencage request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: opencage read body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: opencage returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ocResp openCageResponse
	if err := json.Unmarshal(body, &ocResp); err != nil {
		return nil, eris.Wrap(err, "geocode: opencage parse response")
	}

	if len(ocResp.Results) == 0 {
		return nil, ErrNoResults
	}

	best := ocResp.Results[0]
	return &ForwardResult{
		Latitude:   best.Geometry.Lat,
		Longitude:  best.Geometry.Lng,
		Formatted:  best.Formatted,
		Confidence: best.Confidence,
	}, nil
}
