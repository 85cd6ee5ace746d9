package asyncrt

import "sync"

// Runtime owns a ready-queue consumer, a Task identity registry, and the
// Spawner that feeds it. It is single-shot: Select or Join consumes it,
// and calling either a second time panics — there is no recovery
// contract for reusing an already-consumed Runtime.
type Runtime[O any] struct {
	ready   chan *task[O]
	spawner *spawner[O]

	registry *idRegistry
	state    runtimeState

	pending   atomicCounter
	closeOnce sync.Once

	log     *Logger
	metrics *latencyMetrics
	storm   *wakeStormDetector
}

// New builds a Runtime with the given output type and options. The ready
// queue's capacity defaults to 1000 and may be overridden with
// WithQueueCapacity.
func New[O any](opts ...RuntimeOption) *Runtime[O] {
	o := resolveRuntimeOptions(opts)

	var metrics *latencyMetrics
	if o.metricsEnabled {
		metrics = newLatencyMetrics()
	}

	storm := newWakeStormDetector(o.wakeStorm, o.logger)

	ready := make(chan *task[O], o.queueCapacity)

	return &Runtime[O]{
		ready:    ready,
		spawner:  newSpawner(ready, storm, metrics),
		registry: newIDRegistry(),
		log:      o.logger,
		metrics:  metrics,
		storm:    storm,
	}
}

// Spawn wraps computation in a Task under an auto-assigned id — the
// smallest id above the registry's lastUsedID cursor that is not yet in
// the registry — and places it on the ready queue. Unused ids below the
// cursor are not handed out.
func (r *Runtime[O]) Spawn(computation Future[O]) uint64 {
	id := r.registry.autoAssign()
	r.pending.add(1)
	logTaskSpawned(r.log, id)
	r.spawner.spawn(id, computation)
	return id
}

// SpawnWithID wraps computation in a Task under the caller-supplied id,
// rejecting it with a *DuplicateIDError if id is already in the
// registry. The caller may retry with another id.
func (r *Runtime[O]) SpawnWithID(id uint64, computation Future[O]) (uint64, error) {
	if !r.registry.reserve(id) {
		logDuplicateID(r.log, id)
		return 0, &DuplicateIDError{ID: id}
	}
	r.pending.add(1)
	logTaskSpawned(r.log, id)
	r.spawner.spawn(id, computation)
	return id, nil
}

// closeIfDrained closes the ready channel the instant no Task remains
// live (every spawned Task has either completed or never existed),
// which is what lets Select/Join on an empty Runtime return promptly
// instead of blocking on a channel receive forever.
func (r *Runtime[O]) closeIfDrained() {
	if r.pending.load() == 0 {
		r.closeOnce.Do(func() { close(r.ready) })
	}
}

// begin marks the Runtime consumed, panicking if Select or Join was
// already called.
func (r *Runtime[O]) begin() {
	if !r.state.begin() {
		panic(WrapError("asyncrt: Runtime already consumed", ErrRuntimeConsumed))
	}
}

// Select drains the ready queue, polling each Task it receives, and
// returns the value of the first Task to complete. All other Tasks
// become unreachable once Select returns; any of their outstanding
// Wakers that still fire afterwards are harmless. On an empty Runtime it
// returns (zero, false) without blocking.
func (r *Runtime[O]) Select() (O, bool) {
	r.begin()
	defer r.state.finish()
	r.closeIfDrained()

	var zero O
	for t := range r.ready {
		value, completed, polled := t.poll()
		if !polled {
			continue // duplicate wakeup on an already-completed Task
		}
		logTaskPolled(r.log, t.id, completed)
		if !completed {
			continue // restored to its slot by task.poll; wait for the next wake
		}
		logTaskCompleted(r.log, t.id)
		r.pending.add(-1)
		r.closeIfDrained()
		return value, true
	}
	return zero, false
}

// Join drains the ready queue until every spawned Task has completed,
// recording each Task's value by id, and returns the resulting mapping.
// On an empty Runtime it returns an empty mapping without blocking.
func (r *Runtime[O]) Join() map[uint64]O {
	r.begin()
	defer r.state.finish()
	r.closeIfDrained()

	result := make(map[uint64]O)
	for t := range r.ready {
		value, completed, polled := t.poll()
		if !polled {
			continue
		}
		logTaskPolled(r.log, t.id, completed)
		if !completed {
			continue
		}
		logTaskCompleted(r.log, t.id)
		result[t.id] = value
		r.pending.add(-1)
		r.closeIfDrained()
	}
	return result
}

// Metrics returns a point-in-time snapshot of poll-latency percentiles
// and current ready-queue depth. If WithMetrics(true) was not passed to
// New, the latency fields are always zero; QueueDepth is always
// meaningful.
func (r *Runtime[O]) Metrics() Metrics {
	return r.metrics.snapshot(len(r.ready))
}
