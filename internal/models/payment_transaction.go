package models

import "time"

// PaymentTransaction is the ledger row for one gateway payment attempt.
// tx_ref is assigned once at initialization and never changes; rows are
// never deleted, failed attempts stay for audit.
type PaymentTransaction struct {
	BaseModel
	TxRef    string  `gorm:"uniqueIndex;not null"`
	UserID   string  `gorm:"type:uuid;not null;index"`
	PlanName string  `gorm:"not null"`
	Amount   float64 `gorm:"not null"`
	Currency string  `gorm:"type:varchar(10);default:'ETB'"`

	// Customer snapshot at initialization time.
	Email     string
	FirstName string
	LastName  string

	Status         PaymentStatus `gorm:"type:varchar(20);default:'pending';index"`
	ChapaReference string
	ErrorMessage   string
	CompletedAt    *time.Time
}
