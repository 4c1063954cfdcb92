package usecase

import (
	"context"
	"errors"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"

	"gorm.io/gorm"
)

// DriverView is what the tracking link shows an ambulance driver: the
// active case assigned to the unit and the victim's last shared fix.
type DriverView struct {
	AssignedCase   *entity.Case           `json:"assignedCase,omitempty"`
	VictimPosition *entity.LocationRecord `json:"victimPosition,omitempty"`
}

// DriverView returns the driver-side view for an ambulance. An ambulance
// with no active case yields an empty view, not an error; the driver page
// just shows tracking without case details.
func (s *CaseService) DriverView(ctx context.Context, ambulanceID string) (*DriverView, error) {
	if ambulanceID == "" {
		return nil, entity.NewFailure(entity.ValidationFailure, "driver_view", "ambulance id is required", nil)
	}

	view := &DriverView{}

	assigned, err := s.cases.FindActiveByAmbulance(ctx, ambulanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, entity.NewFailure(entity.PersistenceFailure, "driver_view", "case lookup failed", err)
	}
	view.AssignedCase = assigned

	// Snapshot first, history as fallback: the victim may have shared a
	// location whose snapshot write failed.
	if assigned.Latitude != nil && assigned.Longitude != nil {
		view.VictimPosition = &entity.LocationRecord{
			EntityID:  assigned.ID,
			Latitude:  *assigned.Latitude,
			Longitude: *assigned.Longitude,
		}
		if assigned.LastUpdated != nil {
			view.VictimPosition.Timestamp = *assigned.LastUpdated
		}
		return view, nil
	}

	latest, err := s.locations.LatestByEntity(ctx, assigned.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, entity.NewFailure(entity.PersistenceFailure, "driver_view", "victim location lookup failed", err)
	}
	view.VictimPosition = latest

	return view, nil
}

// LocationShared reports whether the reporter behind a case has already
// shared a position over the location link.
func (s *CaseService) LocationShared(ctx context.Context, caseID string) (bool, error) {
	if caseID == "" {
		return false, entity.NewFailure(entity.ValidationFailure, "location_status", "case id is required", nil)
	}

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, entity.NewFailure(entity.ValidationFailure, "location_status", "unknown case id", err)
		}
		return false, entity.NewFailure(entity.PersistenceFailure, "location_status", "case lookup failed", err)
	}

	if c.Latitude != nil && c.Longitude != nil {
		return true, nil
	}

	// Tolerate a lost snapshot: history is the source of truth.
	if _, err := s.locations.LatestByEntity(ctx, caseID); err == nil {
		return true, nil
	}
	return false, nil
}
