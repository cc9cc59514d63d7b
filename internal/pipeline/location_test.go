package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mowradar/pkg/geocode"
)

func TestGeocodeResolver_Resolve(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}
	fwd.On("Forward", mock.Anything, "65807").Return(&geocode.ForwardResult{
		Latitude:  37.1665,
		Longitude: -93.3102,
		Formatted: "Springfield, MO 65807, United States of America",
	}, nil)
	rev.On("Reverse", mock.Anything, 37.1665, -93.3102).Return(&geocode.Address{
		Road:   "South Campbell Avenue",
		City:   "Springfield",
		County: "Greene County",
		State:  "Missouri",
	}, nil)

	place, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), "  65807 ")
	require.NoError(t, err)

	assert.InDelta(t, 37.1665, place.Latitude, 1e-9)
	assert.InDelta(t, -93.3102, place.Longitude, 1e-9)
	assert.Equal(t, "Springfield, MO 65807, United States of America", place.FormattedLabel)
	assert.Equal(t, "South Campbell Avenue", place.Road)
	assert.Empty(t, place.Neighborhood)
	assert.Empty(t, place.Suburb)
	assert.Equal(t, "Springfield", place.City)
	assert.Equal(t, "Springfield", place.LocalReference())
	fwd.AssertExpectations(t)
	rev.AssertExpectations(t)
}

func TestGeocodeResolver_NoResults(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}
	fwd.On("Forward", mock.Anything, "asdkjaskjd").Return(nil, eris.Wrap(geocode.ErrNoResults, "opencage: forward"))

	_, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), "asdkjaskjd")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrLocationNotFound))
	assert.Equal(t, KindLocationNotFound, Kind(err))
	rev.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything, mock.Anything)
}

func TestGeocodeResolver_EmptyQuery(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), q)
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrLocationNotFound), "query %q", q)
	}
	fwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestGeocodeResolver_ForwardTransportError(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}
	fwd.On("Forward", mock.Anything, "65807").Return(nil, errors.New("connection refused"))

	_, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), "65807")
	require.Error(t, err)

	var upErr *UpstreamServiceError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, StageForwardGeocode, upErr.Stage)
	assert.Equal(t, "forward_geocode: connection refused", err.Error())
}

func TestGeocodeResolver_ReverseError(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}
	fwd.On("Forward", mock.Anything, "65807").Return(&geocode.ForwardResult{Latitude: 1, Longitude: 2}, nil)
	rev.On("Reverse", mock.Anything, 1.0, 2.0).Return(nil, errors.New("unexpected status 503"))

	_, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), "65807")
	require.Error(t, err)

	var upErr *UpstreamServiceError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, StageReverseGeocode, upErr.Stage)
	assert.Equal(t, KindUpstream, Kind(err))
}

func TestGeocodeResolver_EmptyAddressFallsBack(t *testing.T) {
	fwd := &mockForwarder{}
	rev := &mockReverser{}
	fwd.On("Forward", mock.Anything, "middle of the ocean").Return(&geocode.ForwardResult{Latitude: 0, Longitude: -30}, nil)
	rev.On("Reverse", mock.Anything, 0.0, -30.0).Return(&geocode.Address{}, nil)

	place, err := NewGeocodeResolver(fwd, rev).Resolve(context.Background(), "middle of the ocean")
	require.NoError(t, err)
	assert.Equal(t, "your area", place.LocalReference())
}
