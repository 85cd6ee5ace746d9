package asyncrt

import "sync/atomic"

// runtimeLifecycle is a lock-free state machine guarding a Runtime's
// single-shot consumption contract: Select or Join consumes the Runtime,
// and afterwards it cannot be reused.
//
// State Machine:
//
//	awake (0) → draining (1)   [Select or Join begins]
//	draining (1) → terminated (2) [Select or Join returns]
//
// This runtime has exactly one blocking point — the ready-channel
// receive inside Select/Join — so two states plus a terminal one is
// enough; there is no separate "sleeping in a poller" state to
// distinguish from "running".
type runtimeLifecycle uint32

const (
	lifecycleAwake runtimeLifecycle = iota
	lifecycleDraining
	lifecycleTerminated
)

// runtimeState is the atomic CAS guard itself.
type runtimeState struct {
	v atomic.Uint32
}

// begin attempts the awake→draining transition. It returns false if the
// Runtime has already begun (or finished) a Select/Join call.
func (s *runtimeState) begin() bool {
	return s.v.CompareAndSwap(uint32(lifecycleAwake), uint32(lifecycleDraining))
}

// finish transitions draining→terminated. Called when Select/Join
// returns.
func (s *runtimeState) finish() {
	s.v.Store(uint32(lifecycleTerminated))
}

// load returns the current lifecycle state.
func (s *runtimeState) load() runtimeLifecycle {
	return runtimeLifecycle(s.v.Load())
}

// atomicCounter tracks the number of live (spawned, not yet completed)
// Tasks a Runtime owns, so Select/Join know when the ready channel can
// be closed: the queue closes once every spawned Task has completed. A
// Task that never completes keeps the queue open.
type atomicCounter struct {
	v atomic.Int64
}

func (c *atomicCounter) add(delta int64) int64 {
	return c.v.Add(delta)
}

func (c *atomicCounter) load() int64 {
	return c.v.Load()
}
