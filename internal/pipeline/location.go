package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/pkg/geocode"
)

// LocationResolver turns a free-form address or ZIP into a Place.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (*model.Place, error)
}

// GeocodeResolver resolves a query with a forward lookup followed by a
// reverse lookup for the address hierarchy.
type GeocodeResolver struct {
	forward geocode.Forwarder
	reverse geocode.Reverser
}

// NewGeocodeResolver creates a GeocodeResolver.
func NewGeocodeResolver(fwd geocode.Forwarder, rev geocode.Reverser) *GeocodeResolver {
	return &GeocodeResolver{forward: fwd, reverse: rev}
}

// Resolve implements LocationResolver.
func (r *GeocodeResolver) Resolve(ctx context.Context, query string) (*model.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, eris.Wrap(ErrLocationNotFound, "resolve: empty query")
	}

	fwd, err := r.forward.Forward(ctx, query)
	if err != nil {
		if eris.Is(err, geocode.ErrNoResults) {
			return nil, eris.Wrapf(ErrLocationNotFound, "resolve: %q", query)
		}
		return nil, upstream(StageForwardGeocode, err)
	}

	addr, err := r.reverse.Reverse(ctx, fwd.Latitude, fwd.Longitude)
	if err != nil {
		return nil, upstream(StageReverseGeocode, err)
	}

	place := &model.Place{
		Latitude:       fwd.Latitude,
		Longitude:      fwd.Longitude,
		FormattedLabel: fwd.Formatted,
		Road:           addr.Road,
		Neighborhood:   addr.Neighbourhood,
		Suburb:         addr.Suburb,
		City:           addr.City,
		County:         addr.County,
		State:          addr.State,
	}

	zap.L().Debug("resolve: place resolved",
		zap.String("query", query),
		zap.Float64("lat", place.Latitude),
		zap.Float64("lon", place.Longitude),
		zap.String("local_reference", place.LocalReference()),
	)
	return place, nil
}
