package models

// Announcement is a site-wide notice shown to everyone.
type Announcement struct {
	BaseModel
	Title   string `gorm:"not null"`
	Content string `gorm:"type:text;not null"`
}

// Location is a city/region pair listings can reference.
type Location struct {
	BaseModel
	Name   string `gorm:"not null;uniqueIndex:idx_location_once"`
	Region string `gorm:"not null;uniqueIndex:idx_location_once"`
}

// EmailTemplate overrides a built-in transactional mail when a row with
// the matching name exists.
type EmailTemplate struct {
	BaseModel
	Name    string `gorm:"not null;uniqueIndex"`
	Subject string `gorm:"not null"`
	Body    string `gorm:"type:text;not null"`
}
