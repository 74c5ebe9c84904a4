package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrMemberNotFound   = NewError(ErrCodeNotFound, "member not found")
	ErrGameNotFound     = NewError(ErrCodeNotFound, "game not found")
	ErrFAQNotFound      = NewError(ErrCodeNotFound, "faq not found")
	ErrResourceNotFound = NewError(ErrCodeNotFound, "footer resource not found")
	ErrAdminNotFound    = NewError(ErrCodeNotFound, "admin not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")
	ErrAdminExists      = NewError(ErrCodeConflict, "admin already exists")
	ErrPrimaryAdmin     = NewError(ErrCodeForbidden, "the first admin cannot be changed")
	ErrSelfRemoval      = NewError(ErrCodeForbidden, "admins cannot remove themselves")
	ErrAdminInactive    = NewError(ErrCodeForbidden, "admin is not active")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrBadCredentials   = NewError(ErrCodeUnauthorized, "invalid email or password")
	ErrForbiddenReset   = NewError(ErrCodeForbidden, "only the first admin can reset other passwords")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrSnapshotCorrupt  = NewError(ErrCodeInvalid, "stored todo snapshot is malformed")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Invalid builds a validation error for a specific field.
func Invalid(field, reason string) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf("%s %s", field, reason))
}
