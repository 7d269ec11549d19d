package models

type UserRole string
type AccountType string
type ListingStatus string
type ApplicationStatus string
type PaymentStatus string
type OTPPurpose string
type VerificationStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	AccountTypeIndividual AccountType = "individual"
	AccountTypeCompany    AccountType = "company"

	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	OTPPurposeVerify OTPPurpose = "verify"
	OTPPurposeReset  OTPPurpose = "reset"

	VerificationStatusNone     VerificationStatus = "none"
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)
