package database

import (
	"souq_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the two persisted collections.
func AutoMigrate(db *gorm.DB) error {
	// BaseModel ids default to uuid_generate_v4().
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
	)
}
