package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// ButtonSet is the fixed control surface a block offers while it is on top
// of the stack: which of pause/resume/skip/reset are currently meaningful
// actions (spec.md §4.7, §11).
type ButtonSet struct {
	Pause  bool
	Resume bool
	Skip   bool
	Reset  bool
}

// ButtonsBehavior republishes a ButtonSet into a TagButtons display memory
// location on mount; on unmount it only queues a clear-buttons display
// action, and the location itself is released with the block's memory on
// dispose. It is composed as a sibling
// alongside a block's primary behavior via CompositeBehavior rather than
// wrapping it, so the control surface a block advertises is independent
// bookkeeping instead of a decorator's pass-through.
type ButtonsBehavior struct {
	core.BaseBehavior
	Set ButtonSet
	loc *core.MemoryLocation
}

// NewButtonsBehavior builds the button-surface sibling for the given set.
func NewButtonsBehavior(set ButtonSet) *ButtonsBehavior {
	return &ButtonsBehavior{Set: set}
}

func (b *ButtonsBehavior) buttonFragments() []primitives.Fragment {
	var frags []primitives.Fragment
	if b.Set.Pause {
		frags = append(frags, primitives.NewActionFragment(primitives.OriginRuntime, "pause"))
	}
	if b.Set.Resume {
		frags = append(frags, primitives.NewActionFragment(primitives.OriginRuntime, "resume"))
	}
	if b.Set.Skip {
		frags = append(frags, primitives.NewActionFragment(primitives.OriginRuntime, "skip"))
	}
	if b.Set.Reset {
		frags = append(frags, primitives.NewActionFragment(primitives.OriginRuntime, "reset"))
	}
	return frags
}

func (b *ButtonsBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	b.loc = ctx.Block.Memory.Push(core.NewMemoryLocation(core.TagButtons, b.buttonFragments()))
	return []core.Action{
		core.NewAction(core.ActionRegisterButton, core.PhaseDisplay, func(core.Runtime) error { return nil }),
	}
}

func (b *ButtonsBehavior) OnUnmount(ctx *core.BehaviorContext) []core.Action {
	return []core.Action{
		core.NewAction(core.ActionClearButtons, core.PhaseDisplay, func(core.Runtime) error { return nil }),
	}
}
