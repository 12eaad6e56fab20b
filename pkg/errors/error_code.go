package errors

import "net/http"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidColor         ErrorCode = 103
	ErrCodeInvalidRequest       ErrorCode = 104
	ErrCodeInvalidIndex         ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeUnsupportedFormat     ErrorCode = 203

	// Rendering errors (300-399)
	ErrCodeRenderFailed       ErrorCode = 300
	ErrCodeFontUnavailable    ErrorCode = 301
	ErrCodeUnsupportedSurface ErrorCode = 302

	// Config/version errors (400-499)
	ErrCodeConfigLoadFailed ErrorCode = 400
	ErrCodeInvalidVersion   ErrorCode = 401
	ErrCodeVersionMismatch  ErrorCode = 402
)

// HTTPStatus maps an error code to the status the HTTP API answers with.
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c >= 100 && c < 200:
		return http.StatusBadRequest
	case c == ErrCodeDataNotFound:
		return http.StatusNotFound
	case c == ErrCodeUnsupportedFormat, c == ErrCodeUnsupportedSurface:
		return http.StatusUnsupportedMediaType
	case c == ErrCodeVersionMismatch, c == ErrCodeInvalidVersion:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
