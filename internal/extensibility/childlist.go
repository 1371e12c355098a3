package extensibility

import "github.com/comalice/ironloop/internal/core"

// ChildListBehavior walks its statement's children once, in order, pushing
// the next compiled child on every OnNext and popping itself once the
// children are exhausted (spec.md §4.7). It is RoundsBehavior's Total: 1
// special case, kept as its own behavior because the root block and plain
// sequential groupings carry no round-count fragment at all.
//
// skipOnMount defers the first push from OnMount to the first OnNext,
// for the Root composition where a WaitingToStartInjectorBehavior sibling
// must push its idle gate and hold the stack before any child runs
// (spec.md §4.8's "ChildSelection(skipOnMount)").
type ChildListBehavior struct {
	core.BaseBehavior
	skipOnMount bool
}

func NewChildListBehavior(skipOnMount bool) *ChildListBehavior {
	return &ChildListBehavior{skipOnMount: skipOnMount}
}

func (c *ChildListBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	if c.skipOnMount {
		return nil
	}
	return c.pushNextOrPop(ctx)
}

func (c *ChildListBehavior) OnNext(ctx *core.BehaviorContext) []core.Action {
	return c.pushNextOrPop(ctx)
}

func (c *ChildListBehavior) pushNextOrPop(ctx *core.BehaviorContext) []core.Action {
	if !ctx.Block.HasMoreChildren() {
		return []core.Action{
			core.NewAction(core.ActionPopBlock, core.PhaseStack, func(rt core.Runtime) error {
				rt.PopBlock()
				return nil
			}),
		}
	}
	stmt := ctx.Block.Statement.Children[ctx.Block.ChildIndex()]
	ctx.Block.AdvanceChild()
	parent := ctx.Block
	return []core.Action{
		core.NewAction(core.ActionPushBlock, core.PhaseStack, func(rt core.Runtime) error {
			child, err := rt.CompileChild(parent, stmt)
			if err != nil {
				return err
			}
			rt.PushBlock(child)
			return nil
		}),
	}
}
