package dpll

import "github.com/sirupsen/logrus"

// Tracer receives low-level diagnostic events from the engine: decisions,
// forced assignments, backtracks. It mirrors the Solver.Trace/Solver.Tracer
// pair found in older from-scratch solvers, but is satisfied by any logger
// rather than a bespoke Printf interface.
type Tracer interface {
	Tracef(format string, args ...interface{})
}

// NopTracer discards every trace event. It is the default when no Tracer is
// supplied.
type NopTracer struct{}

func (NopTracer) Tracef(string, ...interface{}) {}

// logrusTracer adapts a *logrus.Entry into a Tracer, logging every event at
// debug level.
type logrusTracer struct {
	entry *logrus.Entry
}

// NewLogrusTracer returns a Tracer that writes trace events through entry at
// debug level. Pass entry with whatever fields (e.g. a run id) should be
// attached to every line.
func NewLogrusTracer(entry *logrus.Entry) Tracer {
	return &logrusTracer{entry: entry}
}

func (t *logrusTracer) Tracef(format string, args ...interface{}) {
	t.entry.Debugf(format, args...)
}
