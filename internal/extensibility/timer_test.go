package extensibility

import (
	"testing"

	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerBehaviorCountsDownAndCompletesAtZero(t *testing.T) {
	rt := newFakeRuntime()
	tb := NewTimerBehavior(TimerConfig{DurationMs: 3000, Direction: primitives.DirectionDown})
	block := core.NewBlock(core.BlockKindTimer, &primitives.Statement{}, "", tb)

	ctx := core.NewBehaviorContext(block, rt)
	mountActions := tb.OnMount(ctx)
	require.NoError(t, runActions(rt, mountActions))
	rt.PushBlock(block)

	completed := false
	rt.bus.Register(core.HandlerRegistration{
		EventName: primitives.EventComplete,
		Scope:     primitives.ScopeGlobal,
		Fn: func(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
			completed = true
			return core.HandlerResponse{}
		},
	})

	rt.Publish(primitives.NewEvent(primitives.EventTick, int64(2000), rt.now))
	assert.False(t, completed)
	frags := tb.loc.Fragments()
	require.Len(t, frags, 2, "timer memory carries both the countdown fragment and its span history")
	tv, ok := frags[0].Timer()
	require.True(t, ok)
	assert.Equal(t, int64(1000), tv.DurationMs)

	rt.Publish(primitives.NewEvent(primitives.EventTick, int64(5000), rt.now))
	assert.True(t, completed, "timer must publish complete once remaining reaches zero")
	frags = tb.loc.Fragments()
	tv, _ = frags[0].Timer()
	assert.Equal(t, int64(0), tv.DurationMs, "countdown must floor at zero, never go negative")
}

// TestTimerBehaviorPauseResumeSpans exercises spec.md's S4 scenario: start
// at t=0, pause at t=10s, resume at t=15s, stop at t=25s. The recorded
// spans must skip the paused gap entirely.
func TestTimerBehaviorPauseResumeSpans(t *testing.T) {
	rt := newFakeRuntime()
	tb := NewTimerBehavior(TimerConfig{DurationMs: 0, Direction: primitives.DirectionUp})
	block := core.NewBlock(core.BlockKindTimer, &primitives.Statement{}, "", tb)
	ctx := core.NewBehaviorContext(block, rt)

	rt.now = epochTime(0)
	require.NoError(t, runActions(rt, tb.OnMount(ctx)))
	rt.PushBlock(block)

	rt.now = epochTime(10_000)
	rt.Publish(primitives.NewEvent(primitives.EventPause, nil, rt.now))
	assert.False(t, tb.IsRunning())

	rt.now = epochTime(15_000)
	rt.Publish(primitives.NewEvent(primitives.EventResume, nil, rt.now))
	assert.True(t, tb.IsRunning())

	rt.now = epochTime(25_000)
	rt.Publish(primitives.NewEvent(primitives.EventStop, nil, rt.now))
	assert.False(t, tb.IsRunning())

	spans := tb.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, int64(0), spans[0].Started)
	require.NotNil(t, spans[0].Ended)
	assert.Equal(t, int64(10_000), *spans[0].Ended)
	assert.Equal(t, int64(15_000), spans[1].Started)
	require.NotNil(t, spans[1].Ended)
	assert.Equal(t, int64(25_000), *spans[1].Ended)
}

func TestTimerBehaviorDisposeUnsubscribesTickHandler(t *testing.T) {
	rt := newFakeRuntime()
	tb := NewTimerBehavior(TimerConfig{DurationMs: 1000, Direction: primitives.DirectionDown})
	block := core.NewBlock(core.BlockKindTimer, &primitives.Statement{}, "", tb)
	ctx := core.NewBehaviorContext(block, rt)

	require.NoError(t, runActions(rt, tb.OnMount(ctx)))
	rt.PushBlock(block)
	tb.OnDispose(ctx)

	// After dispose the handler is gone; publishing tick must not panic or
	// advance the (now stale) location.
	assert.NotPanics(t, func() {
		rt.Publish(primitives.NewEvent(primitives.EventTick, int64(500), rt.now))
	})
}
