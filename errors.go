package asyncrt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the runtime's unrecoverable-at-the-API-layer
// conditions (queue overflow is fatal, not returned to a caller to
// retry). They exist mainly so that a recovered
// panic (see Waker.Wake and Runtime's poll loop) can be matched with
// errors.Is by anything that chooses to recover at a higher level, such
// as a test harness.
var (
	// ErrQueueOverflow indicates the ready queue's bounded capacity was
	// exceeded by a spawn or a wake. The runtime has no backpressure
	// contract with user code, so this is fatal: it signals a queue
	// capacity too low for the number of Tasks in flight. A Task holds at
	// most one place on the queue (redundant wakes collapse), so a wake
	// storm alone does not cause it.
	ErrQueueOverflow = errors.New("asyncrt: ready queue overflow")

	// ErrRuntimeConsumed indicates Select or Join was called on a Runtime
	// that has already had Select or Join called on it. A Runtime is
	// single-shot: once a termination method returns, it cannot be
	// reused.
	ErrRuntimeConsumed = errors.New("asyncrt: runtime already consumed by Select or Join")
)

// DuplicateIDError is returned by Runtime.SpawnWithID when the requested
// task id is already registered. It is the one recoverable error kind in
// this package: the caller may retry with a different id.
type DuplicateIDError struct {
	// ID is the task identity that was already in use.
	ID uint64
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("asyncrt: task id %d already in use", e.ID)
}

// Is reports whether target is also a *DuplicateIDError, regardless of
// which id it names, so that callers can write
// errors.Is(err, &DuplicateIDError{}) without needing to know the id.
func (e *DuplicateIDError) Is(target error) bool {
	var other *DuplicateIDError
	return errors.As(target, &other)
}

// WrapError wraps an error with a message, preserving it as the cause for
// errors.Is and errors.As.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
