package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	nominatimReverseURL = "https://nominatim.openstreetmap.org/reverse"
	defaultUserAgent    = "MowRadarBot"
)

type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}

type nominatimAddress struct {
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	County        string `json:"county"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	CountryCode   string `json:"country_code"`
}

type nominatim struct {
	*options
}

// NewReverser creates a Nominatim reverse geocoder. Requests are paced to
// one per second, the public instance's usage limit, unless WithRateLimit
// overrides it.
func NewReverser(opts ...Option) Reverser {
	return &nominatim{options: newOptions(nominatimReverseURL, 1, opts)}
}

// Reverse looks up the address around lat/lon. A location Nominatim cannot
// place (open water, for instance) yields an empty Address, not an error.
func (c *nominatim) Reverse(ctx context.Context, lat, lon float64) (*Address, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim rate limit")
	}

	params := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format": {"jsonv2"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim read body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var nr nominatimResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim parse response")
	}

	if nr.Error != "" {
		zap.L().Debug("nominatim: no address for coordinates",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("reason", nr.Error),
		)
		return &Address{}, nil
	}

	a := nr.Address
	return &Address{
		Road:          a.Road,
		Neighbourhood: a.Neighbourhood,
		Suburb:        a.Suburb,
		City:          firstNonEmpty(a.City, a.Town, a.Village),
		County:        a.County,
		State:         a.State,
		Postcode:      a.Postcode,
		CountryCode:   a.CountryCode,
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
