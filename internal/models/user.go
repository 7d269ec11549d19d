package models

import (
	"time"

	"gorm.io/datatypes"
)

// User registers with email or phone, never necessarily both.
type User struct {
	BaseModel
	FullName     string      `gorm:"not null"`
	Email        *string     `gorm:"uniqueIndex"`
	Phone        *string     `gorm:"uniqueIndex"`
	PasswordHash string      `gorm:"not null"`
	Role         UserRole    `gorm:"type:varchar(20);default:'user'"`
	AccountType  AccountType `gorm:"type:varchar(20);default:'individual'"`
	CompanyName  string
	IsVerified   bool `gorm:"default:false"`
	IsBanned     bool `gorm:"default:false"`

	// Company verification. IsVerified above means a confirmed contact;
	// this is the document-backed badge for company accounts.
	VerificationStatus          VerificationStatus `gorm:"type:varchar(20);default:'none'"`
	VerificationDocuments       datatypes.JSON     `gorm:"type:jsonb"`
	VerificationRequestedAt     *time.Time
	VerifiedAt                  *time.Time
	VerificationRejectionReason string

	// Current plan name, empty when the user has no subscription.
	SubscriptionPlan      string
	SubscriptionExpiresAt *time.Time
}

// OTPCode is a one-time code delivered by email or SMS.
type OTPCode struct {
	BaseModel
	UserID    string     `gorm:"type:uuid;not null;index"`
	Code      string     `gorm:"not null"`
	Purpose   OTPPurpose `gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time
}
