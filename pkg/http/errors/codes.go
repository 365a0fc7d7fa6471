package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeMissingField      = "missing_field"
	ErrCodeInvalidDifficulty = "invalid_difficulty"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Upstream AI errors
	ErrCodeUpstreamError = "upstream_error"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
