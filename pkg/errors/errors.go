// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes for the recommendation pipeline.
//
// Only CodeConfiguration is allowed to escape the core; the runtime codes
// exist so recovered failures can still be classified in logs.
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Recovered runtime errors - logged, never propagated past their component
	CodeProviderCall ErrorCode = "PROVIDER_CALL_ERROR"
	CodeParse        ErrorCode = "PARSE_ERROR"
	CodeDataShape    ErrorCode = "DATA_SHAPE_ERROR"

	// Business logic errors
	CodeHallNotFound ErrorCode = "HALL_NOT_FOUND"
	CodeMenuNotFound ErrorCode = "MENU_NOT_FOUND"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeHallNotFound, CodeMenuNotFound:
		return http.StatusNotFound
	case CodeProviderCall:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewConfigurationError creates a configuration error. This is the only
// error class the recommendation core surfaces to callers.
func NewConfigurationError(details string) *AppError {
	return NewAppError(CodeConfiguration, "Invalid configuration", details)
}

// NewProviderCallError creates an error for a failed completion-provider call
func NewProviderCallError(provider string, cause error) *AppError {
	return NewAppError(
		CodeProviderCall,
		"Completion provider call failed",
		fmt.Sprintf("provider %s did not return a usable response", provider),
	).WithMetadata("provider", provider).WithCause(cause)
}

// NewParseError creates an error for an unparseable model reply
func NewParseError(details string) *AppError {
	return NewAppError(CodeParse, "Model reply could not be parsed", details)
}

// NewHallNotFoundError creates a hall not found error
func NewHallNotFoundError(slug string) *AppError {
	return NewAppError(
		CodeHallNotFound,
		"Dining hall not found",
		fmt.Sprintf("No dining hall with slug %q", slug),
	).WithMetadata("hall_slug", slug)
}

// NewMenuNotFoundError creates a menu not found error
func NewMenuNotFoundError(slug, date string) *AppError {
	return NewAppError(
		CodeMenuNotFound,
		"Menu not found",
		fmt.Sprintf("No menu for hall %q on %s", slug, date),
	).WithMetadata("hall_slug", slug).WithMetadata("date", date)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
		},
	}
}
