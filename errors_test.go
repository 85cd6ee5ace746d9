package asyncrt

import (
	"errors"
	"testing"
)

func TestDuplicateIDError_Error(t *testing.T) {
	err := &DuplicateIDError{ID: 7}
	if got, want := err.Error(), "asyncrt: task id 7 already in use"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestDuplicateIDError_Is(t *testing.T) {
	err := &DuplicateIDError{ID: 1}
	if !errors.Is(err, &DuplicateIDError{ID: 99}) {
		t.Fatalf("errors.Is should match any *DuplicateIDError regardless of id")
	}
	if errors.Is(err, ErrQueueOverflow) {
		t.Fatalf("errors.Is should not match an unrelated sentinel")
	}
}

func TestWrapError(t *testing.T) {
	wrapped := WrapError("asyncrt: task enqueue", ErrQueueOverflow)
	if !errors.Is(wrapped, ErrQueueOverflow) {
		t.Fatalf("WrapError must preserve the cause for errors.Is")
	}
	if got, want := wrapped.Error(), "asyncrt: task enqueue: "+ErrQueueOverflow.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
