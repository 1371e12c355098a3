// Package ironloop is the public facade of the workout script interpreter:
// it assembles internal/primitives, internal/core, internal/jit, and
// internal/telemetry into a single Session type (the behavior library in
// internal/extensibility is reached through internal/jit; the persisters in
// internal/production are used directly by cmd/demo, not by this package) and re-exports the vocabulary callers need (Fragment,
// Statement, Event, OutputStatement, StackSnapshot) without requiring an
// import of the internal tree.
//
// Grounded in the teacher's root package (statechart.go, builder.go,
// context.go, since removed), which played the same "public entry point
// assembling the internal tiers" role for the SCXML engine.
package ironloop

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// Re-exported vocabulary. Callers building or consuming a script work with
// these types without reaching into internal/primitives or internal/core
// directly.
type (
	Fragment        = primitives.Fragment
	Kind            = primitives.Kind
	Origin          = primitives.Origin
	Statement       = primitives.Statement
	Event           = primitives.Event
	BlockKey        = primitives.BlockKey
	TimeSpan        = primitives.TimeSpan
	OutputStatement = core.OutputStatement
	StackSnapshot   = core.StackSnapshot
	BlockKind       = core.BlockKind
)

// Fragment constructors re-exported for callers building a Statement tree
// programmatically (spec.md's external parser is out of scope; see
// SPEC_FULL.md §1).
var (
	NewFragment       = primitives.NewFragment
	NewTimerFragment  = primitives.NewTimerFragment
	NewRoundsFragment = primitives.NewRoundsFragment
	NewRepFragment    = primitives.NewRepFragment
	NewEffortFragment = primitives.NewEffortFragment
	NewLabelFragment  = primitives.NewLabelFragment
	NewActionFragment = primitives.NewActionFragment
)

// Stable event names re-exported for callers driving a Session with
// Send.
const (
	EventStart  = primitives.EventStart
	EventStop   = primitives.EventStop
	EventPause  = primitives.EventPause
	EventResume = primitives.EventResume
	EventReset  = primitives.EventReset
	EventSkip   = primitives.EventSkip
	EventNext   = primitives.EventNext
)
