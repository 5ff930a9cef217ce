// Package errors provides structured error types and recovery suggestions.
//
// Purpose:
//
//	Define consistent error types across all CLI commands with recovery
//	suggestions and clear error messages, and map Mapbox API failures onto
//	the CLI's exit-code scheme.
package errors

import (
	gerrors "errors"
	"fmt"
	"time"

	"github.com/mapbox-community/mts-go/pkg/mts"
)

// ErrorCode represents a standardized error code.
type ErrorCode string

const (
	// ErrCodeAuthenticationFailed indicates the access token was rejected.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeValidationFailed indicates input validation failure.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeAPIFailure indicates the Mapbox API returned an error.
	ErrCodeAPIFailure ErrorCode = "API_FAILURE"
	// ErrCodeRateLimited indicates the Mapbox API rate limit was hit.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeRestricted indicates a destructive operation was throttled.
	ErrCodeRestricted ErrorCode = "OPERATION_RESTRICTED"
	// ErrCodeOperationFailed indicates a general operation failure.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeUsage indicates incorrect command usage.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"
)

// CLIError represents a structured CLI error with recovery suggestions.
type CLIError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
	Details    string
	ExitCode   int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Suggestion != "" {
		msg += "\n\nSuggestion: " + e.Suggestion
	}
	return msg
}

// NewAuthenticationError creates an error for rejected credentials.
func NewAuthenticationError(details string) *CLIError {
	return &CLIError{
		Code:       ErrCodeAuthenticationFailed,
		Message:    "Authentication failed",
		Details:    details,
		Suggestion: "Verify MAPBOX_ACCESS_TOKEN holds a valid secret token with the tilesets scopes, and that MAPBOX_USER_NAME matches the token's account.",
		ExitCode:   1,
	}
}

// NewValidationError creates an error for validation failures.
func NewValidationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   2,
	}
}

// NewOperationError creates an error for operation failures.
func NewOperationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeOperationFailed,
		Message:    "Operation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   1,
	}
}

// NewUsageError creates an error for incorrect usage.
func NewUsageError(message string) *CLIError {
	return &CLIError{
		Code:       ErrCodeUsage,
		Message:    "Incorrect usage",
		Details:    message,
		Suggestion: "Run with --help for usage information.",
		ExitCode:   2,
	}
}

// NewRestrictedError creates an error for a throttled destructive operation.
func NewRestrictedError(operation string, wait time.Duration) *CLIError {
	return &CLIError{
		Code:       ErrCodeRestricted,
		Message:    fmt.Sprintf("Another %s ran moments ago", operation),
		Details:    fmt.Sprintf("wait %s before retrying", wait.Round(time.Second)),
		Suggestion: "Repeated deletions are throttled to protect against scripted mistakes. Pass --force to bypass the throttle.",
		ExitCode:   1,
	}
}

// FromAPIError translates a Mapbox API error into a CLIError with a
// status-appropriate suggestion. Non-API errors become operation failures.
func FromAPIError(err error, operation string) *CLIError {
	var apiErr *mts.APIError
	if !gerrors.As(err, &apiErr) {
		return NewOperationError(
			fmt.Sprintf("%s: %v", operation, err),
			"Check network connectivity to api.mapbox.com.",
		)
	}

	switch {
	case apiErr.IsUnauthorized():
		return NewAuthenticationError(apiErr.Error())
	case apiErr.IsRateLimited():
		return &CLIError{
			Code:       ErrCodeRateLimited,
			Message:    "Rate limited by the Mapbox API",
			Details:    apiErr.Error(),
			Suggestion: "Wait before retrying, or reduce request volume.",
			ExitCode:   1,
		}
	case apiErr.IsNotFound():
		return &CLIError{
			Code:       ErrCodeAPIFailure,
			Message:    "Resource not found",
			Details:    apiErr.Error(),
			Suggestion: "Check the tileset, source or style ID, and that it belongs to your account.",
			ExitCode:   1,
		}
	default:
		return &CLIError{
			Code:       ErrCodeAPIFailure,
			Message:    fmt.Sprintf("Mapbox API rejected the %s request", operation),
			Details:    apiErr.Error(),
			Suggestion: "The details above carry the Mapbox error body; adjust the request accordingly.",
			ExitCode:   1,
		}
	}
}
