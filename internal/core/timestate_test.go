package core

import (
	"testing"

	"github.com/comalice/ironloop/internal/primitives"
	"github.com/stretchr/testify/assert"
)

func TestTimerStateCountdownFloorsAtZero(t *testing.T) {
	ts := &TimerState{DurationMs: 5000, RemainingMs: 5000, Direction: primitives.DirectionDown, Running: true}

	reached := ts.Tick(3000)
	assert.False(t, reached)
	assert.Equal(t, int64(2000), ts.RemainingMs)

	reached = ts.Tick(10000)
	assert.True(t, reached)
	assert.Equal(t, int64(0), ts.RemainingMs, "countdown must never go negative")
	assert.False(t, ts.Running)
}

func TestTimerStatePauseStopsAdvancing(t *testing.T) {
	ts := &TimerState{DurationMs: 5000, RemainingMs: 5000, Direction: primitives.DirectionDown, Running: true}
	ts.Pause()
	ts.Tick(1000)
	assert.Equal(t, int64(5000), ts.RemainingMs)

	ts.Resume()
	ts.Tick(1000)
	assert.Equal(t, int64(4000), ts.RemainingMs)
}

func TestTimerStateResetRestoresConfiguredDuration(t *testing.T) {
	ts := &TimerState{DurationMs: 5000, RemainingMs: 0, Direction: primitives.DirectionDown, Running: false}
	ts.Reset()
	assert.Equal(t, int64(5000), ts.RemainingMs)

	up := &TimerState{DurationMs: 0, RemainingMs: 9000, Direction: primitives.DirectionUp, Running: true}
	up.Reset()
	assert.Equal(t, int64(0), up.RemainingMs)
	assert.False(t, up.Running)
}

func TestRoundStateAdvanceReportsExhaustion(t *testing.T) {
	rs := &RoundState{Current: 1, Total: 3}

	assert.False(t, rs.Advance())
	assert.Equal(t, 2, rs.Current)
	assert.False(t, rs.Advance())
	assert.True(t, rs.Advance(), "advancing past Total must report exhausted")
}

func TestRoundStateRemaining(t *testing.T) {
	rs := &RoundState{Current: 1, Total: 5}
	assert.Equal(t, 5, rs.Remaining())
	rs.Advance()
	assert.Equal(t, 4, rs.Remaining())
}
