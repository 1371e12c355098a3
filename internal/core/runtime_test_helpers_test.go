package core

import (
	"time"

	"github.com/comalice/ironloop/internal/primitives"
)

// fakeRuntime is a minimal Runtime used across core package tests. It
// backs PushBlock/PopBlock with a real Stack, dispatches published events
// through a real EventBus and ActionProcessor, and records output
// statements for assertions.
type fakeRuntime struct {
	now     time.Time
	stack   Stack
	bus     *EventBus
	output  OutputLog
	proc    *ActionProcessor
	compile func(parent *Block, stmt *primitives.Statement) (*Block, error)
}

func newFakeRuntime() *fakeRuntime {
	rt := &fakeRuntime{now: time.Unix(0, 0), proc: NewActionProcessor()}
	rt.bus = NewEventBus(&rt.stack, rt.proc.QueueMany)
	return rt
}

func (r *fakeRuntime) Now() time.Time { return r.now }

func (r *fakeRuntime) PushBlock(b *Block) {
	b.Status = StatusMounted
	r.stack.Push(b)
}

func (r *fakeRuntime) PopBlock() *Block {
	b := r.stack.Pop()
	if b != nil {
		b.Status = StatusUnmounted
	}
	return b
}

func (r *fakeRuntime) TopBlock() *Block         { return r.stack.Top() }
func (r *fakeRuntime) BlockAt(depth int) *Block { return r.stack.At(depth) }
func (r *fakeRuntime) StackDepth() int          { return r.stack.Depth() }
func (r *fakeRuntime) Snapshot() StackSnapshot  { return r.stack.Snapshot(SnapshotInitial, "", primitives.EpochMs(r.now)) }
func (r *fakeRuntime) VisibleMemory(depth int) []*MemoryLocation { return r.stack.VisibleMemory(depth) }

func (r *fakeRuntime) CompileChild(parent *Block, stmt *primitives.Statement) (*Block, error) {
	if r.compile != nil {
		return r.compile(parent, stmt)
	}
	return NewBlock(BlockKindLabel, stmt, parent.Key, BaseBehavior{}), nil
}

func (r *fakeRuntime) Publish(evt primitives.Event) {
	r.bus.Publish(evt, r)
	_ = r.proc.ProcessAllPhases(r)
}

func (r *fakeRuntime) RegisterHandler(reg HandlerRegistration) Unsubscribe {
	return r.bus.Register(reg)
}

func (r *fakeRuntime) UnregisterOwner(owner primitives.BlockKey) {
	r.bus.UnregisterOwner(owner)
}

func (r *fakeRuntime) AddOutput(blockKey primitives.BlockKey, outputType OutputType, fragments []primitives.Fragment) OutputStatement {
	return r.output.Append(blockKey, outputType, r.stack.IndexOf(blockKey), fragments, primitives.EpochMs(r.now))
}
