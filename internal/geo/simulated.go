package geo

import (
	"context"
	"math/rand"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
)

// Simulated is a Locator that random-walks from a seed point. It backs the
// tracker agent when no real device feed is attached, so the capture loop and
// the map view can be exercised end to end.
type Simulated struct {
	mu      sync.Mutex
	lat     float64
	lon     float64
	stepDeg float64
	rng     *rand.Rand
}

// NewSimulated creates a simulated locator starting at a random point, or at
// (lat, lon) when both are non-zero.
func NewSimulated(lat, lon float64, seed int64) *Simulated {
	if lat == 0 && lon == 0 {
		lat = gofakeit.Latitude()
		lon = gofakeit.Longitude()
	}
	return &Simulated{
		lat:     lat,
		lon:     lon,
		stepDeg: 0.0005,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (s *Simulated) Current(ctx context.Context, _ RequestOptions) (Position, error) {
	select {
	case <-ctx.Done():
		return Position{}, ErrTimeout
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lat += (s.rng.Float64() - 0.5) * 2 * s.stepDeg
	s.lon += (s.rng.Float64() - 0.5) * 2 * s.stepDeg

	// keep the walk inside valid coordinate space
	if s.lat > 90 {
		s.lat = 90
	} else if s.lat < -90 {
		s.lat = -90
	}
	if s.lon > 180 {
		s.lon = 180
	} else if s.lon < -180 {
		s.lon = -180
	}

	return Position{Latitude: s.lat, Longitude: s.lon}, nil
}
