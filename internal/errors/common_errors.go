package errors

import (
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface. The code is shown when set,
// otherwise the type.
func (e *AppError) Error() string {
	tag := string(e.Type)
	if e.Code != "" {
		tag = e.Code
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", tag, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", tag, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code.
// A target without a code matches on type alone.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code == "" {
		return t.Type == e.Type
	}
	return t.Code == e.Code
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error.
func NewParsingError(code, message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, code, message, cause)
}

// NewStorageError creates a storage-related error.
func NewStorageError(code, message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, code, message, cause)
}

// NewAppValidationError creates a validation error for AppError type.
func NewAppValidationError(code, message string) *AppError {
	return NewAppError(ErrTypeValidation, code, message, nil)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, CodeInvalidConfig, message, cause)
}
