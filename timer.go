package asyncrt

import (
	"container/heap"
	"sync"
	"time"
)

// timerEntry pairs a deadline with the Waker to invoke once wall-clock
// time reaches it. container/heap is not stable, so equal deadlines do
// not necessarily fire in the order they were pushed; their order is
// fixed by the sequence of heap operations, which makes it deterministic
// (if not meaningful) for a given sequence of registrations.
type timerEntry struct {
	deadline time.Time
	waker    Waker
}

// timerHeap is a min-heap of timerEntry ordered by deadline, implementing
// container/heap.Interface.
type timerHeap []timerEntry

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)         { *h = append(*h, x.(timerEntry)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// timer is the process-wide background timer service: a single
// mutex-guarded min-heap with a dedicated worker goroutine.
//
// Go has no condition variable with a timed wait, so this implementation
// blocks on a select between a time.Timer firing and a buffered
// "recheck" channel — a buffered, non-blocking-send notification pattern
// that lets a new, earlier registration interrupt an in-progress wait
// without blocking the registering goroutine.
type timer struct {
	mu       sync.Mutex
	heap     timerHeap
	shutdown bool
	recheck  chan struct{}
	done     chan struct{}
}

func newTimer() *timer {
	t := &timer{
		recheck: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go t.run()
	return t
}

// notify wakes the worker to recheck the heap, without blocking if a
// notification is already pending.
func (t *timer) notify() {
	select {
	case t.recheck <- struct{}{}:
	default:
	}
}

// register enqueues (deadline, waker) and wakes the worker so it can
// re-evaluate whether this is now the earliest pending deadline. It
// always succeeds while the timer is running; after shutdown it is a
// clean no-op and the waker is simply dropped.
func (t *timer) register(deadline time.Time, waker Waker) {
	t.mu.Lock()
	if t.shutdown {
		t.mu.Unlock()
		return
	}
	heap.Push(&t.heap, timerEntry{deadline: deadline, waker: waker})
	t.mu.Unlock()
	t.notify()
}

// shutdownAndEmpty drops all unfired entries, raises the shutdown flag,
// and wakes the worker so it observes it and exits. Idempotent.
func (t *timer) shutdownAndEmpty() {
	t.mu.Lock()
	if t.shutdown {
		t.mu.Unlock()
		return
	}
	t.shutdown = true
	t.heap = nil
	t.mu.Unlock()
	t.notify()
	<-t.done
}

// run is the worker algorithm: peek the min-deadline entry; if due, pop
// and fire it; otherwise wait until either it becomes due or a new,
// possibly-earlier registration arrives.
func (t *timer) run() {
	defer close(t.done)
	for {
		t.mu.Lock()
		if t.shutdown {
			t.mu.Unlock()
			return
		}

		if t.heap.Len() == 0 {
			t.mu.Unlock()
			<-t.recheck
			continue
		}

		next := t.heap[0]
		now := time.Now()
		if !next.deadline.After(now) {
			heap.Pop(&t.heap)
			t.mu.Unlock()
			next.waker.Wake()
			continue
		}
		t.mu.Unlock()

		wait := time.NewTimer(next.deadline.Sub(now))
		select {
		case <-wait.C:
		case <-t.recheck:
			wait.Stop()
		}
	}
}

var (
	globalTimerOnce sync.Once
	globalTimer     *timer
)

// theTimer returns the process-wide Timer singleton, lazily starting its
// worker goroutine the first time any Runtime needs it.
func theTimer() *timer {
	globalTimerOnce.Do(func() {
		globalTimer = newTimer()
	})
	return globalTimer
}
