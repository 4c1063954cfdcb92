package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// AmbulanceRepository defines the interface for ambulance storage operations
type AmbulanceRepository interface {
	Create(ctx context.Context, ambulance *entity.Ambulance) error
	FindByID(ctx context.Context, id string) (*entity.Ambulance, error)
	FindByStatus(ctx context.Context, status string) ([]*entity.Ambulance, error)
	FindAll(ctx context.Context) ([]*entity.Ambulance, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateLastPosition(ctx context.Context, id string, lat, lon float64, at time.Time) error
}
