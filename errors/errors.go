package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, ErrEmptySequence) matches any EMPTY_SEQUENCE error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is matching. Never mutate these; the constructors
// below return fresh values.
var (
	ErrEmptySequence  = New(ErrCodeEmptySequence, "sequence contains no elements")
	ErrTypeMismatch   = New(ErrCodeTypeMismatch, "element type does not support the operation")
	ErrPipeTerminated = New(ErrCodePipeTerminated, "pipeline already produced a terminal result")
	ErrInvalidConfig  = New(ErrCodeInvalidConfig, "invalid configuration")
)

// --- Common Error Constructors ---

// EmptySequence creates a new AppError for an unseeded fold over no elements.
func EmptySequence(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: "sequence contains no elements",
		Details: map[string]any{"operation": operation},
	}
}

// TypeMismatch creates a new AppError for elements that cannot be hashed or compared.
func TypeMismatch(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("%s requires hashable elements", operation),
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// InvalidArgument creates a new AppError for an invalid argument.
func InvalidArgument(argument, reason string) *AppError {
	details := make(map[string]any)
	if argument != "" {
		details["argument"] = argument
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Details: details,
	}
}

// PipeTerminated creates a new AppError for a stage piped after a terminal result.
func PipeTerminated(stage string) *AppError {
	return &AppError{
		Code: ErrCodePipeTerminated, Message: fmt.Sprintf("cannot pipe %s stage into a terminal result", stage),
		Details: map[string]any{"stage": stage},
	}
}

// InvalidConfig creates a new AppError for configuration validation failures.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
