package database

import (
	"fmt"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4() is used by the model defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.OTPCode{},
		&models.Category{},
		&models.Listing{},
		&models.ListingApplication{},
		&models.ListingComment{},
		&models.Favorite{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.SubscriptionPlan{},
		&models.PaymentTransaction{},
		&models.Setting{},
		&models.Announcement{},
		&models.Location{},
		&models.EmailTemplate{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	return nil
}
