package dto

import (
	"time"

	"gebeya_backend/internal/models"
)

type RequestVerificationRequest struct {
	Documents []string `json:"documents" binding:"required,min=1,dive,url"`
}

type RejectVerificationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type VerificationStatusResponse struct {
	AccountType        models.AccountType        `json:"account_type"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	RequestedAt        *time.Time                `json:"requested_at,omitempty"`
	VerifiedAt         *time.Time                `json:"verified_at,omitempty"`
	RejectionReason    string                    `json:"rejection_reason,omitempty"`
}

type PendingVerificationItem struct {
	UserID      string     `json:"user_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	Documents   []string   `json:"documents"`
	RequestedAt *time.Time `json:"requested_at"`
}
