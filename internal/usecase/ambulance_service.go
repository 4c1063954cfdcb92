package usecase

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
	"github.com/adityadutt29/EmeLoc/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// CreateAmbulanceInput is the management form for registering a unit
type CreateAmbulanceInput struct {
	LicensePlate string `json:"licensePlate" validate:"required"`
	DriverEmail  string `json:"driverEmail" validate:"required,email"`
}

// AmbulanceService is the management workflow that registers ambulances
// before any tracking starts. New units come up available.
type AmbulanceService struct {
	ambulances repository.AmbulanceRepository
	validate   *validator.Validate
	logger     logger.Logger
}

// NewAmbulanceService creates a new ambulance service
func NewAmbulanceService(ambulances repository.AmbulanceRepository, logger logger.Logger) *AmbulanceService {
	return &AmbulanceService{
		ambulances: ambulances,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Create registers a new ambulance with a generated id
func (s *AmbulanceService) Create(ctx context.Context, input CreateAmbulanceInput) (*entity.Ambulance, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, entity.NewFailure(entity.ValidationFailure, "create_ambulance", "invalid ambulance input", err)
	}

	now := time.Now().UTC()
	amb := &entity.Ambulance{
		ID:           utils.NewAmbulanceID(),
		LicensePlate: input.LicensePlate,
		DriverEmail:  input.DriverEmail,
		Status:       entity.AmbulanceAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.ambulances.Create(ctx, amb); err != nil {
		return nil, entity.NewFailure(entity.PersistenceFailure, "create_ambulance", "ambulance insert rejected by store", err)
	}

	s.logger.Info("Ambulance registered", "ambulanceId", amb.ID, "plate", amb.LicensePlate)
	return amb, nil
}

// List returns ambulances, optionally filtered by status
func (s *AmbulanceService) List(ctx context.Context, status string) ([]*entity.Ambulance, error) {
	var (
		ambulances []*entity.Ambulance
		err        error
	)
	if status != "" {
		ambulances, err = s.ambulances.FindByStatus(ctx, status)
	} else {
		ambulances, err = s.ambulances.FindAll(ctx)
	}
	if err != nil {
		return nil, entity.NewFailure(entity.PersistenceFailure, "list_ambulances", "ambulance query failed", err)
	}
	return ambulances, nil
}
