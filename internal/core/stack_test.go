package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPopOrder(t *testing.T) {
	s := &Stack{}
	root := NewBlock(BlockKindRoot, nil, "", BaseBehavior{})
	child := NewBlock(BlockKindTimer, nil, root.Key, BaseBehavior{})

	s.Push(root)
	s.Push(child)

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, child.Key, s.Top().Key)
	assert.True(t, s.IsTop(child.Key))
	assert.False(t, s.IsTop(root.Key))
	assert.True(t, s.Contains(root.Key))

	popped := s.Pop()
	assert.Equal(t, child.Key, popped.Key)
	assert.Equal(t, root.Key, s.Top().Key)
}

func TestStackPopOnEmptyReturnsNil(t *testing.T) {
	s := &Stack{}
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Top())
}

func TestStackSnapshotCapturesBottomToTop(t *testing.T) {
	s := &Stack{}
	root := NewBlock(BlockKindRoot, nil, "", BaseBehavior{})
	child := NewBlock(BlockKindRounds, nil, root.Key, BaseBehavior{})
	s.Push(root)
	s.Push(child)

	snap := s.Snapshot(SnapshotPush, child.Key, 1234)
	assert.Len(t, snap.Entries, 2)
	assert.Equal(t, 2, snap.Depth)
	assert.Equal(t, 0, snap.Entries[0].Depth)
	assert.Equal(t, BlockKindRoot, snap.Entries[0].Kind)
	assert.Equal(t, 1, snap.Entries[1].Depth)
	assert.Equal(t, BlockKindRounds, snap.Entries[1].Kind)
	assert.Equal(t, SnapshotPush, snap.Type)
	require.NotNil(t, snap.AffectedBlock)
	assert.Equal(t, child.Key, *snap.AffectedBlock)
	assert.Equal(t, int64(1234), snap.ClockTime)
}
