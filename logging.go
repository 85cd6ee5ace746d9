package asyncrt

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// logEvent is the concrete logiface.Event implementation this package
// logs through. Using the stumpy backend matches the example wiring shown
// by the logiface-stumpy package in this module's source pack.
type logEvent = stumpy.Event

// Logger is the structured logger type accepted by WithLogger. The zero
// value returned by newNoopLogger is disabled (Level() == LevelDisabled),
// so a Runtime constructed without WithLogger never allocates a writer or
// touches an io.Writer.
type Logger = logiface.Logger[*logEvent]

// newNoopLogger returns a Logger with no writer or event factory
// configured, which logiface.Logger.Level reports as LevelDisabled. All
// Builder calls against it are no-ops.
func newNoopLogger() *Logger {
	return logiface.New[*logEvent]()
}

// NewJSONLogger builds a Logger that writes newline-delimited JSON via the
// stumpy backend, in the same style as the logiface-stumpy example
// package's ExampleEvent_Bytes_customWriterImplementation.
func NewJSONLogger(opts ...stumpy.Option) *Logger {
	return stumpy.L.New(stumpy.L.WithStumpy(opts...))
}

func logTaskSpawned(log *Logger, id uint64) {
	log.Debug().Uint64(`task_id`, id).Log(`task spawned`)
}

func logTaskPolled(log *Logger, id uint64, ready bool) {
	b := log.Debug().Uint64(`task_id`, id).Bool(`ready`, ready)
	b.Log(`task polled`)
}

func logTaskCompleted(log *Logger, id uint64) {
	log.Debug().Uint64(`task_id`, id).Log(`task completed`)
}

func logDuplicateID(log *Logger, id uint64) {
	log.Warning().Uint64(`task_id`, id).Log(`duplicate task id rejected`)
}

func logWakeStorm(log *Logger, id uint64, rate int) {
	log.Warning().
		Uint64(`task_id`, id).
		Int(`wakes`, rate).
		Log(`suspected wake storm: task waking at a sustained high rate`)
}
