package core

import "github.com/comalice/ironloop/internal/primitives"

// OutputType classifies an OutputStatement (spec.md §3): a segment marks a
// block's start, a completion its end, a metric an intermediate milestone
// (round/lap boundary), and a system entry a recoverable error diagnostic
// (spec.md §7).
type OutputType string

const (
	OutputSegment    OutputType = "segment"
	OutputCompletion OutputType = "completion"
	OutputMetric     OutputType = "metric"
	OutputSystem     OutputType = "system"
)

// OutputStatement is one entry in the append-only history stream a Session
// exposes externally (spec.md §3, §4.9). Once appended an OutputStatement
// is immutable; corrections happen by appending a new statement, never by
// mutating an old one.
type OutputStatement struct {
	Seq        int
	OutputType OutputType
	BlockKey   primitives.BlockKey
	// StackLevel is the emitting block's depth at emission time, or -1 if
	// the block was not found on the stack (e.g. it had already been
	// popped when the statement was recorded).
	StackLevel int
	Fragments  []primitives.Fragment
	EmittedAt  int64
}

// OutputLog is the append-only sink behind the output/history stream.
// Grounded in the teacher's HistoryManager
// (internal/core/historymanager.go), generalized from a single restored
// snapshot to a growing, replayable statement log.
type OutputLog struct {
	entries []OutputStatement
}

// Append adds a new statement, stamping it with the next sequence number.
func (l *OutputLog) Append(blockKey primitives.BlockKey, outputType OutputType, stackLevel int, fragments []primitives.Fragment, emittedAt int64) OutputStatement {
	stmt := OutputStatement{
		Seq:        len(l.entries),
		OutputType: outputType,
		BlockKey:   blockKey,
		StackLevel: stackLevel,
		Fragments:  append([]primitives.Fragment(nil), fragments...),
		EmittedAt:  emittedAt,
	}
	l.entries = append(l.entries, stmt)
	return stmt
}

// All returns every statement recorded so far, in emission order.
func (l *OutputLog) All() []OutputStatement {
	return append([]OutputStatement(nil), l.entries...)
}

// Since returns every statement with Seq >= seq, for incremental consumers.
func (l *OutputLog) Since(seq int) []OutputStatement {
	var out []OutputStatement
	for _, e := range l.entries {
		if e.Seq >= seq {
			out = append(out, e)
		}
	}
	return out
}

// Len reports how many statements have been recorded.
func (l *OutputLog) Len() int { return len(l.entries) }
