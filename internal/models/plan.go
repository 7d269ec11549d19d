package models

import "gorm.io/datatypes"

// SubscriptionPlan is the catalog row a payment buys.
type SubscriptionPlan struct {
	BaseModel
	Name         string         `gorm:"uniqueIndex;not null"`
	Price        float64        `gorm:"not null"`
	Currency     string         `gorm:"type:varchar(10);default:'ETB'"`
	DurationDays int            `gorm:"default:30"`
	Features     datatypes.JSON `gorm:"type:jsonb"`
	IsActive     bool           `gorm:"default:true"`
}
