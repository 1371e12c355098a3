package core

import "github.com/comalice/ironloop/internal/primitives"

// TimerState is the mutable runtime state a timer Behavior keeps in its
// MemoryLocation value (spec.md §3): remaining duration counts down to
// zero and never goes negative (Testable Property 9, "countdown floor").
type TimerState struct {
	DurationMs  int64
	RemainingMs int64
	Direction   primitives.TimerDirection
	Running     bool
}

// Tick advances the timer by elapsedMs, clamping RemainingMs at the floor
// for a countdown and reporting whether the timer just reached zero.
func (t *TimerState) Tick(elapsedMs int64) (reachedZero bool) {
	if !t.Running {
		return false
	}
	switch t.Direction {
	case primitives.DirectionDown:
		t.RemainingMs -= elapsedMs
		if t.RemainingMs <= 0 {
			t.RemainingMs = 0
			t.Running = false
			return true
		}
		return false
	default: // DirectionUp
		t.RemainingMs += elapsedMs
		return false
	}
}

// Pause stops the timer from advancing on further Tick calls.
func (t *TimerState) Pause() { t.Running = false }

// Resume allows the timer to advance again.
func (t *TimerState) Resume() { t.Running = true }

// Reset restores the timer to its configured duration (or zero, for a
// count-up timer) and stops it.
func (t *TimerState) Reset() {
	t.Running = false
	switch t.Direction {
	case primitives.DirectionDown:
		t.RemainingMs = t.DurationMs
	default:
		t.RemainingMs = 0
	}
}

// RoundState is the mutable runtime state a rounds Behavior keeps (spec.md
// §3): which repetition of its child statements is currently active.
type RoundState struct {
	Current int
	Total   int
}

// Advance moves to the next round, reporting whether the round set is now
// exhausted (Current > Total).
func (r *RoundState) Advance() (exhausted bool) {
	r.Current++
	return r.Current > r.Total
}

// Remaining reports how many rounds (including the current one) are left.
func (r *RoundState) Remaining() int {
	remaining := r.Total - r.Current + 1
	if remaining < 0 {
		return 0
	}
	return remaining
}
