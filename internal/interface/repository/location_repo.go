package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"

	"gorm.io/gorm"
)

// GormLocationRepository implements the LocationRepository interface
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location history repository
func NewGormLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &GormLocationRepository{
		db: db,
	}
}

// LocationRecords GORM model for database mapping. Seq is a monotonic
// arrival-order column: queries order by (timestamp, seq) so records with
// duplicate timestamps keep their insertion order, which the aggregator's
// stable sort then preserves.
type LocationRecords struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID        string    `gorm:"column:id;uniqueIndex;not null"`
	EntityID  string    `gorm:"column:entity_id;index:idx_entity_time,priority:1;not null"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_entity_time,priority:2;not null"`
}

// TableName overrides the default table name
func (LocationRecords) TableName() string {
	return "location_records"
}

// Insert appends one history row. The table is append-only; no update or
// delete paths exist in this repository.
func (r *GormLocationRepository) Insert(ctx context.Context, record *entity.LocationRecord) error {
	model := LocationRecords{
		ID:        record.ID,
		EntityID:  record.EntityID,
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
		Timestamp: record.Timestamp,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByEntity returns one entity's history in ascending time order
func (r *GormLocationRepository) FindByEntity(ctx context.Context, entityID string, limit int) ([]entity.LocationRecord, error) {
	query := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("timestamp ASC, seq ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []LocationRecords
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return toRecords(models), nil
}

// FindAllOrdered returns the entire history in ascending time order
func (r *GormLocationRepository) FindAllOrdered(ctx context.Context) ([]entity.LocationRecord, error) {
	var models []LocationRecords
	err := r.db.WithContext(ctx).
		Order("timestamp ASC, seq ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toRecords(models), nil
}

// LatestByEntity returns the most recent record for an entity
func (r *GormLocationRepository) LatestByEntity(ctx context.Context, entityID string) (*entity.LocationRecord, error) {
	var model LocationRecords
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("timestamp DESC, seq DESC").
		First(&model).Error
	if err != nil {
		return nil, err
	}
	rec := toRecord(model)
	return &rec, nil
}

func toRecords(models []LocationRecords) []entity.LocationRecord {
	records := make([]entity.LocationRecord, len(models))
	for i, m := range models {
		records[i] = toRecord(m)
	}
	return records
}

func toRecord(m LocationRecords) entity.LocationRecord {
	return entity.LocationRecord{
		ID:        m.ID,
		EntityID:  m.EntityID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Timestamp: m.Timestamp,
	}
}
