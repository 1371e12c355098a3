package core

import "github.com/comalice/ironloop/internal/primitives"

// Stack is the LIFO run stack of mounted blocks (spec.md §3, §4.9): the
// path from the root block to the block currently receiving input. Only
// the top block is "active" for ScopeActive handler dispatch; every block
// on the stack is "present" for ScopeBlock dispatch.
//
// Grounded in the teacher's Runtime active-configuration set
// (statechart.go, since removed) for the "ordered set of currently active
// nodes" concept, flattened from a hierarchical configuration to a single
// explicit stack per spec.md §3's block-stack model.
type Stack struct {
	blocks []*Block
}

// Push places a block on top of the stack.
func (s *Stack) Push(b *Block) {
	s.blocks = append(s.blocks, b)
}

// Pop removes and returns the top block, or nil if the stack is empty.
func (s *Stack) Pop() *Block {
	if len(s.blocks) == 0 {
		return nil
	}
	top := s.blocks[len(s.blocks)-1]
	s.blocks = s.blocks[:len(s.blocks)-1]
	return top
}

// Top returns the top block without removing it, or nil if empty.
func (s *Stack) Top() *Block {
	if len(s.blocks) == 0 {
		return nil
	}
	return s.blocks[len(s.blocks)-1]
}

// At returns the block at the given depth (0 = bottom/root), or nil if out
// of range.
func (s *Stack) At(depth int) *Block {
	if depth < 0 || depth >= len(s.blocks) {
		return nil
	}
	return s.blocks[depth]
}

// Depth reports how many blocks are on the stack.
func (s *Stack) Depth() int { return len(s.blocks) }

// Contains reports whether a block with the given key is anywhere on the
// stack (StackQuery for ScopeBlock).
func (s *Stack) Contains(key primitives.BlockKey) bool {
	for _, b := range s.blocks {
		if b.Key == key {
			return true
		}
	}
	return false
}

// IndexOf returns the depth of the block with the given key, or -1 if it
// is not on the stack (used to stamp an OutputStatement's StackLevel).
func (s *Stack) IndexOf(key primitives.BlockKey) int {
	for i, b := range s.blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// IsTop reports whether the given key is the current top of stack
// (StackQuery for ScopeActive).
func (s *Stack) IsTop(key primitives.BlockKey) bool {
	top := s.Top()
	return top != nil && top.Key == key
}

// VisibleMemory returns the memory a block at the given depth may read:
// its own locations plus every public (non-private-visibility) location
// owned by an ancestor at a lower depth (spec.md §4.2's ancestor
// visibility rule). Private ancestor locations never leak.
func (s *Stack) VisibleMemory(depth int) []*MemoryLocation {
	if depth < 0 || depth >= len(s.blocks) {
		return nil
	}
	var out []*MemoryLocation
	for i := 0; i < depth; i++ {
		for _, loc := range s.blocks[i].Memory.All() {
			if loc.Visibility().isPublic() {
				out = append(out, loc)
			}
		}
	}
	out = append(out, s.blocks[depth].Memory.All()...)
	return out
}

// SnapshotType classifies why a StackSnapshot was published (spec.md §3).
type SnapshotType string

const (
	SnapshotInitial SnapshotType = "initial"
	SnapshotPush    SnapshotType = "push"
	SnapshotPop     SnapshotType = "pop"
	SnapshotClear   SnapshotType = "clear"
)

// StackSnapshot is an immutable point-in-time copy of the stack's block
// keys and kinds, exposed to external consumers who must not hold live
// *Block pointers (spec.md §4.9). Depth is stamped redundantly with
// len(Entries) so testable property 3 ("snapshot.depth ==
// snapshot.blocks.length") is checkable without recomputing it.
type StackSnapshot struct {
	Type          SnapshotType
	Entries       []StackSnapshotEntry
	Depth         int
	AffectedBlock *primitives.BlockKey
	ClockTime     int64
}

// StackSnapshotEntry describes one block's position in a StackSnapshot.
type StackSnapshotEntry struct {
	Depth int
	Key   primitives.BlockKey
	Kind  BlockKind
}

// Snapshot captures the current stack, bottom to top, tagged with why it
// was published. affected is the block that was just pushed or popped, or
// "" when type is Initial/Clear.
func (s *Stack) Snapshot(typ SnapshotType, affected primitives.BlockKey, clockTime int64) StackSnapshot {
	snap := StackSnapshot{Type: typ, ClockTime: clockTime}
	for i, b := range s.blocks {
		snap.Entries = append(snap.Entries, StackSnapshotEntry{Depth: i, Key: b.Key, Kind: b.Kind})
	}
	snap.Depth = len(snap.Entries)
	if affected != "" {
		snap.AffectedBlock = &affected
	}
	return snap
}
