package core

import "github.com/comalice/ironloop/internal/primitives"

// BlockKind names which Behavior a Block is running, mirroring the
// statement Kind it was compiled from. Kept as a distinct type from
// primitives.Kind since a single statement Kind can compile to different
// Behaviors depending on context (spec.md §4.8, the jit tier).
type BlockKind string

const (
	BlockKindRoot      BlockKind = "root"
	BlockKindTimer     BlockKind = "timer"
	BlockKindRounds    BlockKind = "rounds"
	BlockKindRest      BlockKind = "rest"
	BlockKindEffort    BlockKind = "effort"
	BlockKindLabel     BlockKind = "label"
	BlockKindReport    BlockKind = "report"
	BlockKindChildList BlockKind = "child-list"
	BlockKindIdle      BlockKind = "idle-gate"
)

// LifecycleStatus tracks a Block through mount -> next* -> unmount ->
// dispose (spec.md §4.6). Transitions are one-directional; a disposed
// block is never reused.
type LifecycleStatus int

const (
	StatusPending LifecycleStatus = iota
	StatusMounted
	StatusUnmounted
	StatusDisposed
)

func (s LifecycleStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusMounted:
		return "mounted"
	case StatusUnmounted:
		return "unmounted"
	case StatusDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Block is one compiled, stateful instance of a Statement on the run
// stack (spec.md §3, §4.6). It owns a MemoryStore for its private and
// published fragments, a FragmentView resolving its display fragments,
// and the Behavior driving its lifecycle.
//
// Grounded in the teacher's State/StateConfig pairing
// (internal/primitives/stateconfig.go, since removed) for the
// "compiled runtime node wraps a static config" shape, generalized to
// carry a behavior-owned memory store instead of SCXML's fixed
// entry/exit/invoke action lists.
type Block struct {
	Key       primitives.BlockKey
	Kind      BlockKind
	Statement *primitives.Statement
	Parent    primitives.BlockKey
	Status    LifecycleStatus
	Behavior  Behavior
	Memory    MemoryStore
	Display   *FragmentView
	Span      primitives.TimeSpan
	childIdx  int
}

// NewBlock constructs a pending, unmounted block for the given statement.
func NewBlock(kind BlockKind, stmt *primitives.Statement, parent primitives.BlockKey, behavior Behavior) *Block {
	return &Block{
		Key:       primitives.NewBlockKey(),
		Kind:      kind,
		Statement: stmt,
		Parent:    parent,
		Status:    StatusPending,
		Behavior:  behavior,
	}
}

// ChildIndex returns the index of the next not-yet-visited child
// statement, for behaviors that step through Statement.Children in order
// (rounds, child-list).
func (b *Block) ChildIndex() int { return b.childIdx }

// AdvanceChild moves the child cursor forward one position.
func (b *Block) AdvanceChild() { b.childIdx++ }

// ResetChild resets the child cursor to the start (round wraparound).
func (b *Block) ResetChild() { b.childIdx = 0 }

// HasMoreChildren reports whether the statement has an unvisited child.
func (b *Block) HasMoreChildren() bool {
	return b.Statement != nil && b.childIdx < len(b.Statement.Children)
}
