package asyncrt

import (
	"time"

	"github.com/joeycumines/go-catrate"
)

// wakeStormConfig holds the resolved WithWakeStormDetection settings.
type wakeStormConfig struct {
	limit  int
	window time.Duration
}

// wakeStormDetector is an optional, per-Runtime instrumentation layer
// that flags a Task whose Waker fires at a sustained high rate. Such a
// storm does not by itself overflow the ready queue: wakes of a Task that
// is already on the queue collapse into its one pending entry (see
// task.enqueue).
//
// It never gates or delays a wake: catrate.Limiter.Allow is consulted
// purely to decide whether to log, not whether to enqueue. A Task
// legitimately woken thousands of times per second (e.g. a tight custom
// poll loop) is still woken every time; only the warning depends on the
// limiter.
type wakeStormDetector struct {
	limiter *catrate.Limiter
	log     *Logger
	limit   int
}

func newWakeStormDetector(cfg *wakeStormConfig, log *Logger) *wakeStormDetector {
	if cfg == nil {
		return nil
	}
	return &wakeStormDetector{
		limiter: catrate.NewLimiter(map[time.Duration]int{
			cfg.window: cfg.limit,
		}),
		log:   log,
		limit: cfg.limit,
	}
}

// observe records one wake for id and logs a Warning whenever the limiter
// rejects it, i.e. for every wake of id beyond the configured rate;
// repeated warnings for the same id are not suppressed.
func (d *wakeStormDetector) observe(id uint64) {
	if d == nil {
		return
	}
	if _, ok := d.limiter.Allow(id); !ok {
		logWakeStorm(d.log, id, d.limit)
	}
}
