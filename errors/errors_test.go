package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "bad count")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidArgument, err.Code)
	}
	if err.Message != "bad count" {
		t.Errorf("expected message 'bad count', got %q", err.Message)
	}
}

func TestAppError_EmptySequence_Success(t *testing.T) {
	err := EmptySequence("aggregate")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", err.Code)
	}
	if err.Details["operation"] != "aggregate" {
		t.Errorf("expected operation=aggregate, got %v", err.Details["operation"])
	}
	if !stderrors.Is(err, ErrEmptySequence) {
		t.Error("expected errors.Is to match ErrEmptySequence")
	}
	if stderrors.Is(err, ErrTypeMismatch) {
		t.Error("EMPTY_SEQUENCE must not match TYPE_MISMATCH")
	}
}

func TestAppError_TypeMismatch_Cause(t *testing.T) {
	cause := fmt.Errorf("hash of unhashable type []int")
	err := TypeMismatch("distinct", cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !strings.Contains(err.Message, "distinct") {
		t.Errorf("expected message to name the operation, got %q", err.Message)
	}
	if !stderrors.Is(err, ErrTypeMismatch) {
		t.Error("expected errors.Is to match ErrTypeMismatch")
	}
}

func TestAppError_InvalidArgument_EmptyField(t *testing.T) {
	err := InvalidArgument("", "stage is nil")
	if _, ok := err.Details["argument"]; ok {
		t.Error("expected no 'argument' key in details when argument is empty")
	}
	err2 := InvalidArgument("stage", "stage is nil")
	if err2.Details["argument"] != "stage" {
		t.Errorf("expected argument=stage, got %v", err2.Details["argument"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InvalidConfig("isolation is invalid").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := EmptySequence("aggregate").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["operation"] != "aggregate" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	s := PipeTerminated("predicate").Error()
	if !strings.Contains(s, "PIPE_TERMINATED") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "predicate") {
		t.Errorf("expected error string to contain stage, got %q", s)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"EmptySequence", EmptySequence("aggregate"), ErrCodeEmptySequence},
		{"TypeMismatch", TypeMismatch("intersect", nil), ErrCodeTypeMismatch},
		{"InvalidArgument", InvalidArgument("n", "negative"), ErrCodeInvalidArgument},
		{"PipeTerminated", PipeTerminated("action"), ErrCodePipeTerminated},
		{"InvalidConfig", InvalidConfig("bad"), ErrCodeInvalidConfig},
		{"Internal", Internal(nil), ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
			if !HasCode(tc.err, tc.code) {
				t.Errorf("HasCode(%s) = false", tc.code)
			}
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("running pipeline: %w", EmptySequence("aggregate"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find wrapped AppError")
	}
	if appErr.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", appErr.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError to be false for plain error")
	}
	if _, ok := AsAppError(nil); ok {
		t.Error("expected AsAppError(nil) to fail")
	}
}
