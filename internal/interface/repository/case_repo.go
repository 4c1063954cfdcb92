package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCaseRepository implements the CaseRepository interface
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GORM case repository
func NewGormCaseRepository(db *gorm.DB) repository.CaseRepository {
	return &GormCaseRepository{
		db: db,
	}
}

// Cases GORM model for database mapping
type Cases struct {
	ID                  string     `gorm:"column:id;primaryKey"`
	OperatorID          string     `gorm:"column:operator_id"`
	ReporterEmail       string     `gorm:"column:email;not null"`
	Description         string     `gorm:"column:description;not null"`
	Status              string     `gorm:"column:status;index;not null"`
	AssignedAmbulanceID string     `gorm:"column:assigned_ambulance_id;index"`
	Latitude            *float64   `gorm:"column:latitude"`
	Longitude           *float64   `gorm:"column:longitude"`
	LastUpdated         *time.Time `gorm:"column:last_updated"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName overrides the default table name
func (Cases) TableName() string {
	return "cases"
}

// Create inserts a new case
func (r *GormCaseRepository) Create(ctx context.Context, c *entity.Case) error {
	model := toCaseModel(c)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a case by id
func (r *GormCaseRepository) FindByID(ctx context.Context, id string) (*entity.Case, error) {
	var model Cases
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return toCaseEntity(model), nil
}

// FindActiveByAmbulance finds the active case assigned to an ambulance
func (r *GormCaseRepository) FindActiveByAmbulance(ctx context.Context, ambulanceID string) (*entity.Case, error) {
	var model Cases
	err := r.db.WithContext(ctx).
		Where("assigned_ambulance_id = ?", ambulanceID).
		Where("status = ?", entity.CaseActive).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return toCaseEntity(model), nil
}

// UpdateLastPosition writes the denormalized snapshot fields for a case
func (r *GormCaseRepository) UpdateLastPosition(ctx context.Context, id string, lat, lon float64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Cases{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"latitude":     lat,
			"longitude":    lon,
			"last_updated": at,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toCaseModel(c *entity.Case) Cases {
	return Cases{
		ID:                  c.ID,
		OperatorID:          c.OperatorID,
		ReporterEmail:       c.ReporterEmail,
		Description:         c.Description,
		Status:              c.Status,
		AssignedAmbulanceID: c.AssignedAmbulanceID,
		Latitude:            c.Latitude,
		Longitude:           c.Longitude,
		LastUpdated:         c.LastUpdated,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func toCaseEntity(m Cases) *entity.Case {
	return &entity.Case{
		ID:                  m.ID,
		OperatorID:          m.OperatorID,
		ReporterEmail:       m.ReporterEmail,
		Description:         m.Description,
		Status:              m.Status,
		AssignedAmbulanceID: m.AssignedAmbulanceID,
		Latitude:            m.Latitude,
		Longitude:           m.Longitude,
		LastUpdated:         m.LastUpdated,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
