package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kbukum/linqkit/errors"
)

// FieldError is one failed argument check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// Args collects failed argument checks so a call can report all of them
// at once. Checks chain and never stop early.
type Args struct {
	failed []FieldError
}

// NewArgs returns an empty argument checker.
func NewArgs() *Args { return &Args{} }

// Required fails field when value is empty or only whitespace.
func (a *Args) Required(field, value string) *Args {
	return a.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength fails field when value has more than n characters.
func (a *Args) MaxLength(field, value string, n int) *Args {
	if utf8.RuneCountInString(value) > n {
		a.fail(field, fmt.Sprintf("must be at most %d characters", n))
	}
	return a
}

// OptionalUUID fails field when value is set but is not a UUID.
func (a *Args) OptionalUUID(field, value string) *Args {
	if value == "" {
		return a
	}
	if _, err := uuid.Parse(value); err != nil {
		a.fail(field, "must be a valid UUID")
	}
	return a
}

// Check fails field with message unless ok holds.
func (a *Args) Check(ok bool, field, message string) *Args {
	if !ok {
		a.fail(field, message)
	}
	return a
}

// Failed returns the failed checks in the order they were made.
func (a *Args) Failed() []FieldError { return a.failed }

// Validate returns nil when every check passed. Otherwise it returns an
// INVALID_ARGUMENT error naming the first failed field, with all failures
// in the message and under the "fields" detail.
func (a *Args) Validate() *errors.AppError {
	if len(a.failed) == 0 {
		return nil
	}
	parts := make([]string, len(a.failed))
	for i, f := range a.failed {
		parts[i] = f.String()
	}
	return errors.InvalidArgument(a.failed[0].Field, strings.Join(parts, "; ")).
		WithDetail("fields", a.failed)
}

func (a *Args) fail(field, message string) {
	a.failed = append(a.failed, FieldError{Field: field, Message: message})
}
