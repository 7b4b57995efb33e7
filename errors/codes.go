package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Evaluation errors
const (
	// ErrCodeEmptySequence indicates an unseeded fold over an empty sequence.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeTypeMismatch indicates elements that cannot be hashed or compared.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Composition errors
const (
	// ErrCodeInvalidArgument indicates an invalid argument to an operation.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodePipeTerminated indicates a stage piped after a terminal stage.
	ErrCodePipeTerminated ErrorCode = "PIPE_TERMINATED"
)

// Setup errors
const (
	// ErrCodeInvalidConfig indicates configuration that failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string { return string(c) }
