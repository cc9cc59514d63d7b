package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Stage names used in logs, metrics and UpstreamServiceError.
const (
	StageResolve        = "resolve"
	StageForwardGeocode = "forward_geocode"
	StageReverseGeocode = "reverse_geocode"
	StageWeather        = "weather"
	StageRecommend      = "recommend"
	StagePrompt         = "prompt"
	StageNarrate        = "narrate"
	StageCost           = "cost"
)

// Error kinds returned by Kind.
const (
	KindLocationNotFound = "location_not_found"
	KindUpstream         = "upstream_service_error"
	KindGeneration       = "generation_error"
	KindInternal         = "internal"
)

// ErrLocationNotFound means forward geocoding produced no match for the query.
var ErrLocationNotFound = eris.New("location not found")

// UpstreamServiceError is a transport or decoding failure from a lookup
// service (geocoding or weather).
type UpstreamServiceError struct {
	Stage string
	Err   error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

// GenerationError is a failure of the text-generation backend, including an
// empty or malformed completion.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation: %s: %v", e.Message, e.Err)
	}
	return "generation: " + e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

func upstream(stage string, err error) error {
	return &UpstreamServiceError{Stage: stage, Err: err}
}

// Kind classifies err for HTTP status mapping and metric labels.
func Kind(err error) string {
	var upErr *UpstreamServiceError
	var genErr *GenerationError
	switch {
	case err == nil:
		return ""
	case eris.Is(err, ErrLocationNotFound):
		return KindLocationNotFound
	case errors.As(err, &upErr):
		return KindUpstream
	case errors.As(err, &genErr):
		return KindGeneration
	default:
		return KindInternal
	}
}

// Describe renders err as a single line suitable for an end user.
func Describe(err error) string {
	var upErr *UpstreamServiceError
	var genErr *GenerationError
	switch {
	case err == nil:
		return ""
	case eris.Is(err, ErrLocationNotFound):
		return "Unable to find that location. Please check the address or ZIP."
	case errors.As(err, &upErr):
		return oneLine(fmt.Sprintf("The %s service is unavailable: %v", strings.ReplaceAll(upErr.Stage, "_", " "), upErr.Err))
	case errors.As(err, &genErr):
		msg := "Could not generate a pitch: " + genErr.Message
		if genErr.Err != nil {
			msg += ": " + genErr.Err.Error()
		}
		return oneLine(msg)
	default:
		return oneLine("Unexpected error: " + err.Error())
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
