package ironloop_test

import (
	"testing"
	"time"

	"github.com/comalice/ironloop"
	"github.com/comalice/ironloop/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRunsLabelThenEffortThenRest(t *testing.T) {
	script := ironloop.NewStatement("root").Children(
		ironloop.Label("intro", "Warmup"),
		ironloop.Effort("squats", "Squats"),
		ironloop.Rest("rest", 5000),
	).Build()

	mock := clock.NewMock(time.Unix(0, 0))
	session, err := ironloop.NewSession(script, ironloop.WithClock(mock), ironloop.WithTickInterval(time.Second))
	require.NoError(t, err)
	require.NoError(t, session.Start())

	// The label block emits output and pops itself without any input.
	history := session.History()
	require.NotEmpty(t, history)
	assert.Equal(t, "Warmup", history[0].Fragments[0].Text())

	// The effort block waits for an explicit "next".
	require.NoError(t, session.Send(ironloop.EventNext, nil))

	// The rest block is now active; advancing the mock clock past its
	// duration must pop it without further input.
	mock.Advance(6 * time.Second)

	assert.True(t, session.Complete() || session.StackDepth() == 0)
}

func TestSessionPublishesStackSnapshotsOnPushAndPop(t *testing.T) {
	script := ironloop.NewStatement("root").Children(
		ironloop.Label("intro", "Warmup"),
	).Build()

	mock := clock.NewMock(time.Unix(0, 0))
	session, err := ironloop.NewSession(script, ironloop.WithClock(mock))
	require.NoError(t, err)

	var snapshots []ironloop.StackSnapshot
	unsub := session.SubscribeToStack(func(s ironloop.StackSnapshot) {
		snapshots = append(snapshots, s)
	})
	defer unsub()

	require.NoError(t, session.Start())

	require.NotEmpty(t, snapshots)
	for _, snap := range snapshots {
		assert.Equal(t, len(snap.Entries), snap.Depth)
	}
	// The very first snapshot is the pre-push initial state.
	assert.Equal(t, 0, snapshots[0].Depth)
}

func TestSessionPublishesOutputStatementsAsAppended(t *testing.T) {
	script := ironloop.NewStatement("root").Children(
		ironloop.Label("intro", "Warmup"),
	).Build()

	mock := clock.NewMock(time.Unix(0, 0))
	session, err := ironloop.NewSession(script, ironloop.WithClock(mock))
	require.NoError(t, err)

	var seen []ironloop.OutputStatement
	unsub := session.SubscribeToOutput(func(o ironloop.OutputStatement) {
		seen = append(seen, o)
	})
	defer unsub()

	require.NoError(t, session.Start())

	require.NotEmpty(t, seen)
	assert.Equal(t, session.History(), seen)
}

func TestSessionRoundsRepeatsChildren(t *testing.T) {
	script := ironloop.Rounds("amrap", 2,
		ironloop.Label("round-marker", "round"),
	).Build()

	mock := clock.NewMock(time.Unix(0, 0))
	session, err := ironloop.NewSession(script, ironloop.WithClock(mock))
	require.NoError(t, err)
	require.NoError(t, session.Start())

	history := session.History()
	// Each round emits one label output; two rounds of one child each.
	assert.GreaterOrEqual(t, len(history), 2)
}
