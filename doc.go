// Package asyncrt provides a minimal, single-threaded cooperative
// asynchronous task runtime: the machinery that drives user-supplied lazy
// computations ([Future]) to completion on one executor goroutine, using
// wakeups delivered from off-goroutine timer sources.
//
// # Architecture
//
// A [Runtime] owns a ready queue (a bounded Go channel of tasks) and drives
// a poll loop on whichever goroutine calls [Runtime.Select] or
// [Runtime.Join]. User code submits a [Future] via [Runtime.Spawn] or
// [Runtime.SpawnWithID]; the Runtime wraps it in a Task and places it on
// the ready queue. When the Runtime polls a Task and the Task cannot yet
// complete, it registers the [Waker] handed to it via the poll [Context]
// with some wakeup source (the package-level timer singleton, for
// [Sleep]) and returns Pending. When that source fires, it invokes the
// Waker, which re-enqueues the Task for another poll.
//
// # Termination
//
// [Runtime] offers two termination modes, both of which consume the
// Runtime (it is single-shot and cannot be reused afterward):
//
//   - [Runtime.Select] races all spawned tasks and returns the first
//     completed value.
//   - [Runtime.Join] waits for every spawned task and returns their values
//     keyed by task id.
//
// # Timers
//
// [Sleep] is the one user-visible client of the background timer
// service: a process-wide singleton holding a min-heap of (deadline,
// waker) pairs on a dedicated goroutine, ordered so that earlier deadlines
// always fire first.
//
// # Thread Safety
//
// [Runtime.Spawn], [Runtime.SpawnWithID], [Waker.Wake], and Timer
// registration are all safe to call from any goroutine. Exactly one
// goroutine polls any given Task's body at a time (enforced by the Task's
// internal mutex), and [Runtime.Select]/[Runtime.Join] must be called from
// a single goroutine (the Runtime is not safe to drive concurrently from
// two goroutines).
//
// # Non-goals
//
// This runtime deliberately does not implement: multi-threaded
// work-stealing scheduling, blocking-I/O integration, cancellation of
// in-flight tasks, task priorities, fairness guarantees beyond
// round-robin, a reactor abstraction for network descriptors, cross-task
// communication primitives (channels, mutex futures), structured
// concurrency, or dynamic task aborts.
//
// # Usage
//
//	// resolveAfter is a tiny Future[int] that sleeps, then yields a value.
//	// Writing small Future implementations like this is the normal way to
//	// compose a Sleep with a result; the runtime itself stays minimal.
//	type resolveAfter struct {
//		sleep asyncrt.Future[struct{}]
//		value int
//	}
//
//	func (r *resolveAfter) Poll(cx *asyncrt.Context) (int, bool) {
//		if _, ok := r.sleep.Poll(cx); !ok {
//			return 0, false
//		}
//		return r.value, true
//	}
//
//	rt := asyncrt.New[int]()
//	rt.Spawn(&resolveAfter{sleep: asyncrt.Sleep(5 * time.Second), value: 1})
//	rt.Spawn(&resolveAfter{sleep: asyncrt.Sleep(2 * time.Second), value: 2})
//	v, ok := rt.Select() // v == 2, ok == true, after ~2s
package asyncrt
