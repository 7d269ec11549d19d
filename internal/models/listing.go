package models

import (
	"gorm.io/datatypes"
)

// Listing goes through moderation before it appears in public search.
type Listing struct {
	BaseModelWithDeleted
	UserID      string  `gorm:"type:uuid;not null;index"`
	CategoryID  string  `gorm:"type:uuid;not null;index"`
	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Currency    string  `gorm:"type:varchar(10);default:'ETB'"`
	ListingType string  `gorm:"type:varchar(20);index"` // sale, rent, service, job
	City        string  `gorm:"index"`

	Status          ListingStatus `gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason string

	// Category-specific fields (bedrooms, mileage, salary...) live in one
	// jsonb document instead of dozens of nullable columns.
	Attributes datatypes.JSON `gorm:"type:jsonb"`
	Images     datatypes.JSON `gorm:"type:jsonb"`

	ViewCount int `gorm:"default:0"`

	User     *User     `gorm:"foreignKey:UserID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}

type ListingApplication struct {
	BaseModel
	ListingID string            `gorm:"type:uuid;not null;index;uniqueIndex:idx_application_once"`
	UserID    string            `gorm:"type:uuid;not null;uniqueIndex:idx_application_once"`
	Message   string            `gorm:"type:text"`
	Status    ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`

	User *User `gorm:"foreignKey:UserID"`
}

type ListingComment struct {
	BaseModel
	ListingID string `gorm:"type:uuid;not null;index"`
	UserID    string `gorm:"type:uuid;not null"`
	Content   string `gorm:"type:text;not null"`

	User *User `gorm:"foreignKey:UserID"`
}

type Favorite struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_once"`
	ListingID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorite_once"`
}
