package geo

import (
	"context"
	"errors"
	"time"
)

// Sentinel failures for position requests. The recorder maps these onto its
// own failure taxonomy; callers here only need to tell them apart.
var (
	ErrUnavailable = errors.New("geolocation capability unavailable")
	ErrDenied      = errors.New("position request denied")
	ErrTimeout     = errors.New("position request timed out")
)

// Position is one device fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// RequestOptions mirror the device geolocation request parameters: a bounded
// wait, a high-accuracy preference, and no use of a cached fix.
type RequestOptions struct {
	Timeout            time.Duration
	EnableHighAccuracy bool
	MaximumAge         time.Duration
}

// DefaultRequestOptions returns the options every capture uses.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		Timeout:            10 * time.Second,
		EnableHighAccuracy: true,
		MaximumAge:         0,
	}
}

// Locator obtains the current device position. Current must respect the
// context deadline and return ErrTimeout rather than hang.
type Locator interface {
	Current(ctx context.Context, opts RequestOptions) (Position, error)
}

// Static is a Locator pinned to one fix.
type Static struct {
	Position Position
	Err      error
}

func (s Static) Current(_ context.Context, _ RequestOptions) (Position, error) {
	if s.Err != nil {
		return Position{}, s.Err
	}
	return s.Position, nil
}
