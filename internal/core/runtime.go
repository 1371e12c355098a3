package core

import (
	"time"

	"github.com/comalice/ironloop/internal/primitives"
)

// Runtime is the callback surface an Action.Do, HandlerFunc, or Behavior
// method uses to reach back into the session that owns it: the stack, the
// event bus, the output log, and the compiler. Defined here rather than in
// the root package so internal/core stays import-cycle free — the root
// ironloop package's Session implements Runtime and wires its pieces
// behind it (spec.md §9, resolving the teacher's split between
// internal/core.Machine and the root Runtime into one callback interface).
type Runtime interface {
	// Now returns the session clock's current time.
	Now() time.Time

	// PushBlock mounts and places a block on top of the stack.
	PushBlock(b *Block)
	// PopBlock unmounts and removes the top block, returning it.
	PopBlock() *Block
	// TopBlock returns the current top of stack without removing it.
	TopBlock() *Block
	// BlockAt returns the block at the given stack depth (0 = root).
	BlockAt(depth int) *Block
	// StackDepth reports how many blocks are on the stack.
	StackDepth() int
	// Snapshot captures the current stack for external consumers.
	Snapshot() StackSnapshot
	// VisibleMemory returns the memory locations a block at the given
	// depth may read: its own plus every public ancestor location
	// (spec.md §4.2).
	VisibleMemory(depth int) []*MemoryLocation

	// CompileChild compiles a child statement into a new Block owned by
	// parent, without mounting it (spec.md §4.8).
	CompileChild(parent *Block, stmt *primitives.Statement) (*Block, error)

	// Publish dispatches an event through the session's bus.
	Publish(evt primitives.Event)
	// RegisterHandler adds a handler to the session's bus.
	RegisterHandler(reg HandlerRegistration) Unsubscribe
	// UnregisterOwner removes every handler owned by the given block.
	UnregisterOwner(owner primitives.BlockKey)

	// AddOutput appends a statement to the session's output log.
	AddOutput(blockKey primitives.BlockKey, outputType OutputType, fragments []primitives.Fragment) OutputStatement
}
