package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	// Parse failures in the core pipeline. Each maps to one failure kind a
	// caller can branch on.
	ErrTypeInvalidWellFormat   ErrorType = "INVALID_WELL_FORMAT"
	ErrTypeWellOutOfRange      ErrorType = "WELL_OUT_OF_RANGE"
	ErrTypeMalformedGrid       ErrorType = "MALFORMED_GRID"
	ErrTypeMissingWell         ErrorType = "MISSING_WELL_IN_SAMPLE_NAME"
	ErrTypeNonNumeric          ErrorType = "NON_NUMERIC_MEASUREMENT"
	ErrTypeInconsistentColumns ErrorType = "INCONSISTENT_COLUMNS"

	// Failures in the I/O collaborators around the core.
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

// AppError is the application error type. Message says what failed, Cause
// preserves the underlying error for errors.Is/As, and Context carries the
// offending cell, row or file so failures are reported precisely rather than
// silently coerced.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair identifying what failed.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new application error.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of err when it is (or wraps) an AppError,
// or an empty string otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// Helper constructors for the pipeline failure kinds.

// NewWellFormatError reports text that contains no recognizable well token.
func NewWellFormatError(text string) *AppError {
	return New(ErrTypeInvalidWellFormat,
		fmt.Sprintf("no well position found in %q", text), nil).
		WithContext("text", text)
}

// NewWellRangeError reports a well token whose row or column is outside the
// A-H x 1-12 plate geometry.
func NewWellRangeError(token string) *AppError {
	return New(ErrTypeWellOutOfRange,
		fmt.Sprintf("well %q is outside the A-H x 1-12 plate", token), nil).
		WithContext("token", token)
}

// NewGridError reports a plate-map grid that cannot be interpreted.
func NewGridError(message string) *AppError {
	return New(ErrTypeMalformedGrid, message, nil)
}

// NewMissingWellError reports a measurement row whose sample name carries no
// well token.
func NewMissingWellError(sourceName string, row int, cause error) *AppError {
	return New(ErrTypeMissingWell,
		fmt.Sprintf("sample name %q has no well position", sourceName), cause).
		WithContext("row", row).
		WithContext("source_name", sourceName)
}

// NewNonNumericError reports a measurement cell that cannot be coerced to a
// number. It never stands in for a silent zero.
func NewNonNumericError(row int, column, cell string) *AppError {
	return New(ErrTypeNonNumeric,
		fmt.Sprintf("measurement %q in row %d is not numeric: %q", column, row, cell), nil).
		WithContext("row", row).
		WithContext("column", column).
		WithContext("cell", cell)
}

// NewColumnsError reports a measurement row that does not match the column
// schema established by the header row.
func NewColumnsError(message string, row int) *AppError {
	return New(ErrTypeInconsistentColumns, message, nil).WithContext("row", row)
}

// Helper constructors for the collaborator error types.

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return New(ErrTypeValidation, message, nil)
}

// NewStorageError creates a file system or decoding error.
func NewStorageError(message string, cause error) *AppError {
	return New(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return New(ErrTypeConfig, message, cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	return New(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}
