package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the relational tables this package maps
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Ambulances{},
		&Cases{},
		&LocationRecords{},
	)
}
