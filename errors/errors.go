package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error type surfaced to API and CLI callers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
		Timestamp: time.Now(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now(),
	}
}

// Pulse Errors
func ErrMissingNotes() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_PULSE_MISSING_NOTES,
		Message:   "Missing notes",
		Timestamp: time.Now(),
	}
}

func ErrInvalidPasscode() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_PULSE_INVALID_PASSCODE,
		Message:   "Invalid passcode",
		Timestamp: time.Now(),
	}
}

// ErrExtractionParseFailed reports model output that is not JSON. raw is
// truncated to keep responses bounded.
func ErrExtractionParseFailed(raw string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_PULSE_EXTRACTION_INVALID,
		Message:   "Failed to parse extracted JSON",
		Timestamp: time.Now(),
	}.WithDetail("raw", truncate(raw, 2000))
}

// AI Errors
func ErrLLMNotConfigured(provider, setup string) AppError {
	return AppError{
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_AI_NOT_CONFIGURED,
		Message:   fmt.Sprintf("Missing API key for %s", provider),
		Timestamp: time.Now(),
	}.WithDetail("setup", setup)
}

func ErrAIServiceUnavailable(service string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusServiceUnavailable,
		Code:      ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:   "AI service temporarily unavailable",
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

func ErrExtractionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_AI_EXTRACTION_FAILED,
		Message:   "Signal extraction failed",
		Timestamp: time.Now(),
	}
}

func ErrReportGenerationFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_REPORT_GENERATION_FAILED,
		Message:   "Failed to generate report",
		Timestamp: time.Now(),
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:   fmt.Sprintf("Cache operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now(),
	}.WithDetail("query", query)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
