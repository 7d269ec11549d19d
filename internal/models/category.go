package models

type Category struct {
	BaseModel
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Icon        string
	Description string
	IsActive    bool `gorm:"default:true"`
}
