package models

import "time"

type Notification struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;index"`
	Type      string `gorm:"not null"` // "listing_approved", "new_message", "new_application"
	Title     string `gorm:"not null"`
	Message   string
	RelatedID *string `gorm:"type:uuid"`
	IsRead    bool    `gorm:"default:false"`
	ReadAt    *time.Time
}
