package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAmbulanceRepository implements the AmbulanceRepository interface
type GormAmbulanceRepository struct {
	db *gorm.DB
}

// NewGormAmbulanceRepository creates a new GORM ambulance repository
func NewGormAmbulanceRepository(db *gorm.DB) repository.AmbulanceRepository {
	return &GormAmbulanceRepository{
		db: db,
	}
}

// Ambulances GORM model for database mapping
type Ambulances struct {
	ID           string     `gorm:"column:id;primaryKey"`
	LicensePlate string     `gorm:"column:license_plate;not null"`
	DriverEmail  string     `gorm:"column:driver_email;not null"`
	Status       string     `gorm:"column:status;index;not null"`
	Latitude     *float64   `gorm:"column:latitude"`
	Longitude    *float64   `gorm:"column:longitude"`
	LastUpdated  *time.Time `gorm:"column:last_updated"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (Ambulances) TableName() string {
	return "ambulances"
}

// Create inserts a new ambulance
func (r *GormAmbulanceRepository) Create(ctx context.Context, ambulance *entity.Ambulance) error {
	model := toAmbulanceModel(ambulance)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an ambulance by id
func (r *GormAmbulanceRepository) FindByID(ctx context.Context, id string) (*entity.Ambulance, error) {
	var model Ambulances
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return toAmbulanceEntity(model), nil
}

// FindByStatus returns every ambulance in the given status
func (r *GormAmbulanceRepository) FindByStatus(ctx context.Context, status string) ([]*entity.Ambulance, error) {
	var models []Ambulances
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&models).Error; err != nil {
		return nil, err
	}
	return toAmbulanceEntities(models), nil
}

// FindAll returns every ambulance
func (r *GormAmbulanceRepository) FindAll(ctx context.Context) ([]*entity.Ambulance, error) {
	var models []Ambulances
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toAmbulanceEntities(models), nil
}

// UpdateStatus sets an ambulance's availability status
func (r *GormAmbulanceRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&Ambulances{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateLastPosition writes the denormalized snapshot fields. The entity
// may have been deleted since the capture started; that surfaces as
// ErrRecordNotFound and the caller treats it as a non-fatal snapshot miss.
func (r *GormAmbulanceRepository) UpdateLastPosition(ctx context.Context, id string, lat, lon float64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Ambulances{}).
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

func toAmbulanceModel(a *entity.Ambulance) Ambulances {
	return Ambulances{
		ID:           a.ID,
		LicensePlate: a.LicensePlate,
		DriverEmail:  a.DriverEmail,
		Status:       a.Status,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		LastUpdated:  a.LastUpdated,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAmbulanceEntity(m Ambulances) *entity.Ambulance {
	return &entity.Ambulance{
		ID:           m.ID,
		LicensePlate: m.LicensePlate,
		DriverEmail:  m.DriverEmail,
		Status:       m.Status,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		LastUpdated:  m.LastUpdated,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAmbulanceEntities(models []Ambulances) []*entity.Ambulance {
	entities := make([]*entity.Ambulance, len(models))
	for i, m := range models {
		entities[i] = toAmbulanceEntity(m)
	}
	return entities
}
