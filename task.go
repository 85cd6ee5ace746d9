package asyncrt

import (
	"sync"
	"sync/atomic"
	"time"
)

// task is the Runtime's owned wrapper around one in-flight Future[O]. Its
// body slot transitions {Some → taken-out → Some} across a
// non-completing poll, and {Some → taken-out → None} on completion — the
// mutex is held only for the duration of taking the body out or putting
// it back, never across the Poll call itself.
type task[O any] struct {
	id     uint64
	ready  chan<- *task[O]
	storm  *wakeStormDetector
	metric *latencyMetrics

	mu   sync.Mutex
	body Future[O] // nil once completed

	// enqueued is true while this Task has an outstanding reference on
	// the ready channel (either it was just pushed, or a wake fired
	// while it was already pending there). It collapses redundant
	// re-enqueues from concurrent wakes into at most one pending send.
	enqueued atomic.Bool
}

func newTask[O any](id uint64, body Future[O], ready chan<- *task[O], storm *wakeStormDetector, metric *latencyMetrics) *task[O] {
	return &task[O]{
		id:     id,
		ready:  ready,
		body:   body,
		storm:  storm,
		metric: metric,
	}
}

// waker derives a Waker capability from this Task, for use in a Context
// passed to the Task's Poll.
func (t *task[O]) waker() Waker {
	return Waker{target: taskWakeTarget[O]{t}}
}

// enqueue pushes t onto its ready channel exactly once while a prior push
// hasn't yet been consumed, aborting the process on overflow
// (QueueOverflow is a hard configuration error, not a
// runtime-recoverable condition).
func (t *task[O]) enqueue() {
	if t.storm != nil {
		t.storm.observe(t.id)
	}
	if !t.enqueued.CompareAndSwap(false, true) {
		// Already pending on the ready channel; the poll that drains it
		// will observe the current body state, so this wake is not lost.
		return
	}
	select {
	case t.ready <- t:
	default:
		panic(WrapError("asyncrt: task enqueue", ErrQueueOverflow))
	}
}

// take removes the body from its slot for polling, reporting false if the
// Task has already completed (body is nil) — this is the duplicate
// wakeup case in Select/Join's poll loops.
func (t *task[O]) take() (Future[O], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enqueued.Store(false)
	if t.body == nil {
		return nil, false
	}
	body := t.body
	t.body = nil
	return body, true
}

// restore puts body back into the slot after a Pending poll.
func (t *task[O]) restore(body Future[O]) {
	t.mu.Lock()
	t.body = body
	t.mu.Unlock()
}

// poll takes the body, polls it exactly once with a fresh Context
// carrying this Task's Waker, and either restores it (Pending) or leaves
// the slot empty (Ready). Returns the value and whether it completed; if
// take reports false (already completed/duplicate wakeup), poll reports
// (zero, false, false).
func (t *task[O]) poll() (value O, completed bool, polled bool) {
	body, ok := t.take()
	if !ok {
		return value, false, false
	}

	start := time.Now()
	cx := &Context{waker: t.waker()}
	v, done := body.Poll(cx)
	if t.metric != nil {
		t.metric.record(time.Since(start))
	}

	if done {
		return v, true, true
	}
	t.restore(body)
	return value, false, true
}

// taskWakeTarget adapts *task[O] to the untyped wakeTarget interface that
// Waker holds, so that Waker itself need not be generic over O — a Waker
// only ever needs to re-enqueue its Task, never to see its output type.
type taskWakeTarget[O any] struct {
	t *task[O]
}

func (w taskWakeTarget[O]) id() uint64 { return w.t.id }
func (w taskWakeTarget[O]) enqueue()   { w.t.enqueue() }
