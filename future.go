package asyncrt

// Future is a lazy computation producing a value of type O. Each call to
// Poll either completes it (returning the value and true) or reports that
// it isn't ready yet (returning the zero value and false).
//
// A Future that returns false must, before returning, register the
// Context's Waker with some wakeup source whose firing is possible before
// the Future can next make progress (see Context.Waker) — the Runtime
// itself does not retry a pending Future on its own; invariant 4 of the
// runtime's data model places that responsibility on the Future
// implementer.
//
// A Future must not be polled again after it has returned true; the
// Runtime never does so (see Task's body-slot discipline in task.go).
type Future[O any] interface {
	Poll(cx *Context) (O, bool)
}

// FutureFunc adapts a plain function into a Future, for Futures that need
// no state of their own beyond a closure.
type FutureFunc[O any] func(cx *Context) (O, bool)

// Poll implements Future.
func (f FutureFunc[O]) Poll(cx *Context) (O, bool) { return f(cx) }

// Context is handed to a Future on every Poll call. It carries the Waker
// that, if invoked, will cause the polling Task to be re-queued.
type Context struct {
	waker Waker
}

// Waker returns the capability that schedules the current Task for
// another Poll. It may be cloned and invoked from any goroutine, including
// after the current Poll call has returned.
func (cx *Context) Waker() Waker {
	return cx.waker
}
