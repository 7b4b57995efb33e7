// Package errors provides the structured error type used across linqkit.
// Every failure the library itself raises is an *AppError carrying a
// machine-readable ErrorCode, so callers can match with errors.Is against
// the exported sentinels or inspect the code with AsAppError.
package errors
