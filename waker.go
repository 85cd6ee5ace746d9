package asyncrt

// wakeTarget is the minimal surface a Waker needs from a Task: its id
// (for logging/instrumentation) and a way to re-enqueue itself onto the
// ready queue (at most one pending entry per Task; wakes while it is
// already queued collapse into that entry).
type wakeTarget interface {
	id() uint64
	enqueue()
}

// Waker is the capability handed to a Future via Context on every Poll. It
// is derived from the polling Task; invoking Wake re-enqueues that Task
// onto the Runtime's ready queue. Wakers are cheap to copy — copies share
// the same underlying Task and are interchangeable.
//
// Wake is safe to call from any goroutine, including the Timer's
// background goroutine and after the Task has already completed (in which
// case it is a no-op — see Task.enqueue).
type Waker struct {
	target wakeTarget
}

// Wake schedules the Task this Waker was derived from for another Poll.
// Calling Wake on a Waker derived from an already-completed Task is a
// harmless no-op.
//
// If the ready queue is at capacity, this is a hard configuration error
// (QueueOverflow): the runtime has no backpressure contract with user
// code, so the call panics rather than blocking or silently dropping
// the wakeup.
func (w Waker) Wake() {
	if w.target == nil {
		return
	}
	w.target.enqueue()
}
