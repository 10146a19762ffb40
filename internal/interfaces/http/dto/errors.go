package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	// ErrCodeInternal is returned for anything that is not a known client error
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeServiceUnavailable is used when an optional subsystem is switched off
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is used when request binding or field validation fails
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeInvalidInput is used for malformed input that is not tied to one field
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInvalidID is used when a path or query identifier is not a UUID
	ErrCodeInvalidID = "INVALID_ID"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// Upload and throttling error codes
const (
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
)

// InternalErrorMessage is the only message a client sees for a 500
const InternalErrorMessage = "An unexpected error occurred"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidID:    http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	ErrCodeRateLimitExceeded:    http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Any INVALID_* code is a 400; unknown codes are a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code maps to a 4xx status
func IsClientError(code string) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}
