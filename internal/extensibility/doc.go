// Package extensibility is the behavior library: one core.Behavior
// implementation per block kind (timer, rounds, child-list, rest, effort,
// label, report), plus the button/control-surface behavior shared by every
// interactive block.
//
// Grounded in the teacher's DefaultActionRunner/LoggingActionRunner pair
// (internal/extensibility/actionrunner.go, since rewritten) for the
// "runner executes a lifecycle action and the runtime owns the loop"
// division of responsibility, and in TimerEventSource
// (internal/extensibility/eventsource.go, since rewritten) for driving a
// behavior off clock ticks rather than polling.
package extensibility
