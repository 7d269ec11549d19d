package models

import "time"

// Setting is a persisted key/value pair. Payment and feature-flag
// configuration stored here overrides environment variables.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
