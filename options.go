package asyncrt

import "time"

// defaultQueueCapacity is the ready queue's bounded capacity: the
// number of Tasks that may be in flight on the ready channel at once.
// Exceeding it is fatal (ErrQueueOverflow).
const defaultQueueCapacity = 1000

// runtimeOptions holds the resolved configuration for a Runtime,
// constructed via RuntimeOption values passed to New.
type runtimeOptions struct {
	queueCapacity  int
	logger         *Logger
	metricsEnabled bool
	wakeStorm      *wakeStormConfig
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption interface {
	applyRuntime(*runtimeOptions)
}

type runtimeOptionFunc func(*runtimeOptions)

func (f runtimeOptionFunc) applyRuntime(o *runtimeOptions) { f(o) }

// WithQueueCapacity overrides the ready queue's bounded capacity, which
// defaults to 1000; this option exists so the bound can be lowered in
// tests that want to
// observe overflow behavior (or raised for workloads with many more than
// 1000 concurrently in-flight tasks), without changing the default.
func WithQueueCapacity(n int) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		if n > 0 {
			o.queueCapacity = n
		}
	})
}

// WithLogger attaches a structured logger to the Runtime. Task
// spawn/poll/completion are logged at Debug; duplicate-id rejections and
// suspected wake storms are logged at Warning. Without this option, the
// Runtime logs nowhere (see newNoopLogger).
func WithLogger(logger *Logger) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithMetrics enables poll-latency and ready-queue-depth tracking,
// retrievable via Runtime.Metrics. Disabled by default to avoid the
// recording overhead on every poll.
func WithMetrics(enabled bool) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		o.metricsEnabled = enabled
	})
}

// WithWakeStormDetection enables a per-task wake-rate check: every push of
// a single Task onto the ready queue (its initial spawn and each Waker
// fire) is counted, and each one beyond limit within window logs a
// Warning (via WithLogger's logger, if any). This never throttles or drops
// a wake — it is purely an observability signal for runaway wake storms.
func WithWakeStormDetection(limit int, window time.Duration) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		if limit > 0 && window > 0 {
			o.wakeStorm = &wakeStormConfig{limit: limit, window: window}
		}
	})
}

func resolveRuntimeOptions(opts []RuntimeOption) *runtimeOptions {
	o := &runtimeOptions{
		queueCapacity: defaultQueueCapacity,
		logger:        newNoopLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRuntime(o)
	}
	return o
}
