package extensibility

import (
	"time"

	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// fakeRuntime is a minimal core.Runtime for behavior-level tests: it backs
// the stack with a real core.Stack and a real core.EventBus, and records
// every output statement appended.
type fakeRuntime struct {
	now    time.Time
	stack  core.Stack
	bus    *core.EventBus
	output core.OutputLog
	proc   *core.ActionProcessor
}

func newFakeRuntime() *fakeRuntime {
	rt := &fakeRuntime{now: time.Unix(0, 0), proc: core.NewActionProcessor()}
	rt.bus = core.NewEventBus(&rt.stack, rt.proc.QueueMany)
	return rt
}

func (r *fakeRuntime) Now() time.Time { return r.now }

func (r *fakeRuntime) PushBlock(b *core.Block) {
	b.Status = core.StatusMounted
	r.stack.Push(b)
}

func (r *fakeRuntime) PopBlock() *core.Block {
	b := r.stack.Pop()
	if b != nil {
		b.Status = core.StatusUnmounted
	}
	return b
}

func (r *fakeRuntime) TopBlock() *core.Block         { return r.stack.Top() }
func (r *fakeRuntime) BlockAt(depth int) *core.Block { return r.stack.At(depth) }
func (r *fakeRuntime) StackDepth() int               { return r.stack.Depth() }
func (r *fakeRuntime) Snapshot() core.StackSnapshot {
	return r.stack.Snapshot(core.SnapshotInitial, "", primitives.EpochMs(r.now))
}
func (r *fakeRuntime) VisibleMemory(depth int) []*core.MemoryLocation {
	return r.stack.VisibleMemory(depth)
}

func (r *fakeRuntime) CompileChild(parent *core.Block, stmt *primitives.Statement) (*core.Block, error) {
	return core.NewBlock(core.BlockKindLabel, stmt, parent.Key, NewLabelBehavior("")), nil
}

func (r *fakeRuntime) Publish(evt primitives.Event) {
	r.bus.Publish(evt, r)
	_ = r.proc.ProcessAllPhases(r)
}

func (r *fakeRuntime) RegisterHandler(reg core.HandlerRegistration) core.Unsubscribe {
	return r.bus.Register(reg)
}

func (r *fakeRuntime) UnregisterOwner(owner primitives.BlockKey) {
	r.bus.UnregisterOwner(owner)
}

func (r *fakeRuntime) AddOutput(blockKey primitives.BlockKey, outputType core.OutputType, fragments []primitives.Fragment) core.OutputStatement {
	return r.output.Append(blockKey, outputType, r.stack.IndexOf(blockKey), fragments, primitives.EpochMs(r.now))
}

func epochTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func runActions(rt *fakeRuntime, actions []core.Action) error {
	p := core.NewActionProcessor()
	p.QueueMany(actions)
	return p.ProcessAllPhases(rt)
}
