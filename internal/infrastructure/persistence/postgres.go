package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres opens a Postgres connection with bounded retry. Managed
// databases routinely reject the first connections after a cold start, so
// the server keeps trying instead of crash-looping.
func NewPostgres(dsn string, attempts int, delay time.Duration) (*gorm.DB, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}

		lastErr = err
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("postgres connect failed after %d attempts: %w", attempts, lastErr)
}
