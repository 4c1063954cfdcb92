package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/pkg/utils"
)

// SnapshotRouter routes a denormalized last-position update to the table
// matching the entity id's prefix: "amb-" ids hit the ambulances table,
// "case-" ids hit the cases table.
type SnapshotRouter struct {
	ambulances repository.AmbulanceRepository
	cases      repository.CaseRepository
}

// NewSnapshotRouter creates a snapshot router over both entity tables
func NewSnapshotRouter(ambulances repository.AmbulanceRepository, cases repository.CaseRepository) repository.SnapshotRepository {
	return &SnapshotRouter{
		ambulances: ambulances,
		cases:      cases,
	}
}

// UpdateLastPosition updates the snapshot fields of whichever entity owns the id
func (r *SnapshotRouter) UpdateLastPosition(ctx context.Context, entityID string, lat, lon float64, at time.Time) error {
	switch {
	case utils.IsAmbulanceID(entityID):
		return r.ambulances.UpdateLastPosition(ctx, entityID, lat, lon, at)
	case utils.IsCaseID(entityID):
		return r.cases.UpdateLastPosition(ctx, entityID, lat, lon, at)
	default:
		return fmt.Errorf("unknown entity id prefix: %q", entityID)
	}
}
