package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for common business errors.
Repositories return their own sentinel errors; services map them onto
these before they reach a handler.
*/

// ErrNotFound wraps a repository not-found error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for state-machine violations.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth & user status ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number already in use",
	http.StatusConflict,
)

var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Your account has been banned",
	http.StatusForbidden,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your account first",
	http.StatusForbidden,
)

// ErrInvalidOTP covers wrong, expired and already-used codes alike.
var ErrInvalidOTP = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Payments ---

// ErrDuplicateReference - a ledger row with this tx_ref already exists.
var ErrDuplicateReference = New(
	CodeDuplicateReference,
	"payment",
	"Transaction reference already exists",
	http.StatusConflict,
)

// ErrPaymentNotFound - no ledger row for the given tx_ref.
var ErrPaymentNotFound = New(
	CodeNotFound,
	"payment",
	"Payment transaction not found",
	http.StatusNotFound,
)

// ErrInvalidSignature - webhook signature did not match the configured secret.
var ErrInvalidSignature = New(
	CodeInvalidSignature,
	"payment",
	"Invalid webhook signature",
	http.StatusUnauthorized,
)

// ErrVerificationFailed - the gateway did not confirm the transaction.
var ErrVerificationFailed = New(
	CodeVerificationFailed,
	"payment",
	"Payment verification failed",
	http.StatusBadGateway,
)

// ErrTransactionNotCompleted - grant requested for a non-completed transaction.
var ErrTransactionNotCompleted = New(
	CodeTransactionNotCompleted,
	"payment",
	"Transaction is not completed",
	http.StatusConflict,
)

// ErrGrantFailed - the subscription grant transaction rolled back.
var ErrGrantFailed = New(
	CodeGrantFailed,
	"payment",
	"Failed to grant subscription",
	http.StatusInternalServerError,
)

// WrapVerificationFailed attaches the gateway error as the cause.
func WrapVerificationFailed(err error) *AppError {
	return Wrap(err, CodeVerificationFailed, "payment", "Payment verification failed", http.StatusBadGateway)
}

// WrapGrantFailed attaches the rollback cause.
func WrapGrantFailed(err error) *AppError {
	return Wrap(err, CodeGrantFailed, "payment", "Failed to grant subscription", http.StatusInternalServerError)
}

// --- Listings ---

var ErrListingNotApproved = New(
	CodeInvalidStatus,
	"listing",
	"Listing is not approved",
	http.StatusConflict,
)

var ErrNotListingOwner = New(
	CodeForbidden,
	"listing",
	"You do not own this listing",
	http.StatusForbidden,
)

var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"listing",
	"You have already applied to this listing",
	http.StatusConflict,
)

// --- Chat ---

var ErrConversationAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to conversation denied",
	http.StatusForbidden,
)

var ErrSelfConversation = New(
	CodeInvalidOperation,
	"chat",
	"Cannot start a conversation with yourself",
	http.StatusBadRequest,
)

// --- Admin ---

var ErrCannotModifySelf = New(
	CodeForbidden,
	"admin",
	"Operation on self is not allowed",
	http.StatusForbidden,
)
