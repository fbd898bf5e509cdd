package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeIdentityUnavailable indicates the embedding context supplied no identity claim.
	ErrCodeIdentityUnavailable ErrorCode = "identity_unavailable"
	// ErrCodeFingerprint indicates the device fingerprint could not be computed.
	ErrCodeFingerprint ErrorCode = "fingerprint_failure"
	// ErrCodeTransport indicates a gateway call failed at the transport or response level.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeAdmin indicates an administrative gateway call failed.
	ErrCodeAdmin ErrorCode = "admin_failure"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use
// with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IdentityUnavailable creates a new IdentityUnavailable error.
func IdentityUnavailable(message string) *AppError {
	return &AppError{Code: ErrCodeIdentityUnavailable, Message: message}
}

// Fingerprint creates a new Fingerprint error.
func Fingerprint(message string) *AppError {
	return &AppError{Code: ErrCodeFingerprint, Message: message}
}

// Fingerprintf creates a new Fingerprint error with formatted message.
func Fingerprintf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeFingerprint, Message: fmt.Sprintf(format, args...)}
}

// Transport creates a new Transport error.
func Transport(message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message}
}

// Transportf creates a new Transport error with formatted message.
func Transportf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: fmt.Sprintf(format, args...)}
}

// Admin creates a new Admin error.
func Admin(message string) *AppError {
	return &AppError{Code: ErrCodeAdmin, Message: message}
}

// Adminf creates a new Admin error with formatted message.
func Adminf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeAdmin, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsIdentityUnavailable checks if an error is an IdentityUnavailable error.
func IsIdentityUnavailable(err error) bool {
	return isCode(err, ErrCodeIdentityUnavailable)
}

// IsFingerprint checks if an error is a Fingerprint error.
func IsFingerprint(err error) bool {
	return isCode(err, ErrCodeFingerprint)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsAdmin checks if an error is an Admin error.
func IsAdmin(err error) bool {
	return isCode(err, ErrCodeAdmin)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
