package asyncrt

// spawner is the thin producer-side endpoint a Runtime uses to turn a
// Future[O] into a *task[O] and hand it its first ready-queue push. It
// exists as its own small type so Runtime.Spawn/SpawnWithID share exactly
// one code path for "build a task, push it, return its id".
//
// The ready queue itself is a plain buffered Go channel, so spawning a
// task is a single unconditional send.
type spawner[O any] struct {
	ready  chan *task[O]
	storm  *wakeStormDetector
	metric *latencyMetrics
}

func newSpawner[O any](ready chan *task[O], storm *wakeStormDetector, metric *latencyMetrics) *spawner[O] {
	return &spawner[O]{ready: ready, storm: storm, metric: metric}
}

// spawn builds a *task[O] around body under id and pushes it onto the
// ready queue for its first poll.
func (s *spawner[O]) spawn(id uint64, body Future[O]) *task[O] {
	t := newTask(id, body, s.ready, s.storm, s.metric)
	t.enqueue()
	return t
}
