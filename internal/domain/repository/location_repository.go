package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// LocationRepository is the append-only history store for position
// observations. The tracking subsystem never updates or deletes rows here.
type LocationRepository interface {
	Insert(ctx context.Context, record *entity.LocationRecord) error
	FindByEntity(ctx context.Context, entityID string, limit int) ([]entity.LocationRecord, error)
	FindAllOrdered(ctx context.Context) ([]entity.LocationRecord, error)
	LatestByEntity(ctx context.Context, entityID string) (*entity.LocationRecord, error)
}

// SnapshotRepository updates the denormalized last-known-position fields on
// a tracked entity record. The update is best-effort: history is the source
// of truth and a failed snapshot write never invalidates a durable append.
type SnapshotRepository interface {
	UpdateLastPosition(ctx context.Context, entityID string, lat, lon float64, at time.Time) error
}
