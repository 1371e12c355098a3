package extensibility

import (
	"testing"

	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffortBehaviorWaitsForNextEvent(t *testing.T) {
	rt := newFakeRuntime()
	eb := NewEffortBehavior()
	block := core.NewBlock(core.BlockKindEffort, &primitives.Statement{}, "", eb)
	ctx := core.NewBehaviorContext(block, rt)

	require.NoError(t, runActions(rt, eb.OnMount(ctx)))
	rt.PushBlock(block)

	rt.Publish(primitives.NewEvent(primitives.EventTick, nil, rt.now))
	assert.Equal(t, 1, rt.stack.Depth(), "a tick must not advance a manually-advanced block")

	rt.Publish(primitives.NewEvent(primitives.EventNext, nil, rt.now))
	assert.Equal(t, 0, rt.stack.Depth(), "next must pop the effort block")
}

func TestLabelBehaviorEmitsAndPopsImmediately(t *testing.T) {
	rt := newFakeRuntime()
	lb := NewLabelBehavior("Warmup")
	block := core.NewBlock(core.BlockKindLabel, &primitives.Statement{}, "", lb)
	ctx := core.NewBehaviorContext(block, rt)
	rt.PushBlock(block)

	require.NoError(t, runActions(rt, lb.OnMount(ctx)))

	assert.Equal(t, 0, rt.stack.Depth())
	all := rt.output.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Warmup", all[0].Fragments[0].Text())
}
