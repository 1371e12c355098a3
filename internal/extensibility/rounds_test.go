package extensibility

import (
	"testing"

	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundsBehaviorPushesChildOnMountAndRepeats(t *testing.T) {
	rt := newFakeRuntime()
	stmt := &primitives.Statement{
		Children: []*primitives.Statement{
			{ID: "child-a"},
		},
	}
	rb := NewRoundsBehavior(2)
	block := core.NewBlock(core.BlockKindRounds, stmt, "", rb)
	ctx := core.NewBehaviorContext(block, rt)
	rt.PushBlock(block)

	require.NoError(t, runActions(rt, rb.OnMount(ctx)))
	assert.Equal(t, 2, rt.stack.Depth(), "round 1's child must be pushed")

	// simulate the child completing and being popped
	rt.PopBlock()
	require.NoError(t, runActions(rt, rb.OnNext(ctx)))
	assert.Equal(t, 2, rt.stack.Depth(), "round 2's child must be pushed after round 1 wraps")

	rt.PopBlock()
	require.NoError(t, runActions(rt, rb.OnNext(ctx)))
	assert.Equal(t, 0, rt.stack.Depth(), "rounds behavior pops itself once Total rounds complete")
}
