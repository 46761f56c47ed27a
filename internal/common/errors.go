package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes reported across the parse boundary.
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeAcquisitionFailed   = "ACQUISITION_FAILED"
	CodeValidationRejected  = "VALIDATION_REJECTED"
	CodeInternal            = "INTERNAL"
	CodeConfig              = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnreadable          = errors.New("document is unreadable, corrupted or encrypted")
	ErrNotRecognized       = errors.New("document does not look like the expected type")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

// RemediationHint is appended to acquisition failures shown to humans.
const RemediationHint = "try a clearer scan or text-based document"

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf maps an error to its boundary code.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrUnsupportedFileType):
		return CodeUnsupportedFileType
	case errors.Is(err, ErrUnreadable):
		return CodeAcquisitionFailed
	case errors.Is(err, ErrNotRecognized):
		return CodeValidationRejected
	}
	return CodeInternal
}
