package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// CaseRepository defines the interface for case storage operations
type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	FindByID(ctx context.Context, id string) (*entity.Case, error)
	FindActiveByAmbulance(ctx context.Context, ambulanceID string) (*entity.Case, error)
	UpdateLastPosition(ctx context.Context, id string, lat, lon float64, at time.Time) error
}
