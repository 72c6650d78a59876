package errors

const (
	UnknownErrorCode          = 100_001
	ValidationFailedErrorCode = 100_002
	UnauthorizedErrorCode     = 100_003
	TooManyRequestsErrorCode  = 100_004
)

var UnknownError = new(UnknownErrorCode, "UnknownError", "unexpected error: %v")

// ValidationFailedError indicates submitted data does not pass field validation
var ValidationFailedError = new(ValidationFailedErrorCode, "ValidationFailed", "validation failed: %s")

// UnauthorizedError indicates the request carries no valid admin session
var UnauthorizedError = new(UnauthorizedErrorCode, "Unauthorized", "admin session is missing or expired")

var TooManyRequestsError = new(TooManyRequestsErrorCode, "TooManyRequests", "too many attempts, retry after %s")
