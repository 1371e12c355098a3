// Package clock provides the single time authority the ironloop core is
// allowed to consult (spec.md §4.3: "behaviors must not read wall-clock
// directly"). Clock is a small interface with two implementations:
//
//   - RealClock wraps time.AfterFunc/time.Ticker for production use; a
//     Session ticks it at a fixed cadence from Start until Stop, Dispose,
//     or an invariant halt.
//   - Mock drives time synchronously so tests can advance the clock
//     deterministically instead of sleeping on wall time.
//
// Grounded in the teacher's tick-based realtime.RealtimeRuntime
// (comalice-statechartx/realtime), which wraps a time.Ticker and processes a
// batch of events once per tick. ironloop keeps the ticker/callback shape
// but not the teacher's buffered-channel event source: RealClock.Every
// calls its callback directly from the ticker goroutine, with no queue
// and no dropping. It also drops the embedded hierarchical
// Runtime, the parallel-region bookkeeping, and the priority/sequence
// numbered event batching — spec.md's cooperative, single-threaded pump
// loop needs none of it; the Action Processor already provides strict
// ordering (internal/core/processor.go).
package clock
