package apperrors

// ErrorCode identifies an error class in API responses.
type ErrorCode string

const (
	// System errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business errors
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication / authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Payments
	CodeDuplicateReference      ErrorCode = "DUPLICATE_REFERENCE"
	CodeInvalidSignature        ErrorCode = "INVALID_SIGNATURE"
	CodeVerificationFailed      ErrorCode = "VERIFICATION_FAILED"
	CodeTransactionNotCompleted ErrorCode = "TRANSACTION_NOT_COMPLETED"
	CodeGrantFailed             ErrorCode = "GRANT_FAILED"
)
