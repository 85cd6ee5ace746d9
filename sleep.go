package asyncrt

import "time"

// sleepFuture is the Future[struct{}] returned by Sleep: it captures its
// deadline at construction time, reports Ready on any poll at or after
// that deadline, and otherwise registers once with the process Timer (on
// its first pending poll) so that the Timer's wake brings the next poll.
type sleepFuture struct {
	deadline   time.Time
	registered bool
	fired      bool
}

// Sleep returns a Future that becomes Ready, carrying no value, once the
// given duration has elapsed. A zero or negative duration is Ready
// immediately on the first poll.
func Sleep(d time.Duration) Future[struct{}] {
	return &sleepFuture{deadline: time.Now().Add(d)}
}

func (s *sleepFuture) Poll(cx *Context) (struct{}, bool) {
	if s.fired || !time.Now().Before(s.deadline) {
		s.fired = true
		return struct{}{}, true
	}
	if !s.registered {
		s.registered = true
		theTimer().register(s.deadline, cx.Waker())
	}
	return struct{}{}, false
}
