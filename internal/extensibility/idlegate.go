package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// IdleGateBehavior is a leaf block that blocks all progress until the user
// emits `start`, then pops itself so the stack beneath it can proceed
// (spec.md §4.7's WaitingToStartInjectorBehavior). It carries no display
// fragments of its own beyond its presence on the stack.
type IdleGateBehavior struct {
	core.BaseBehavior
	unsub core.Unsubscribe
}

func NewIdleGateBehavior() *IdleGateBehavior { return &IdleGateBehavior{} }

func (g *IdleGateBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	block := ctx.Block
	g.unsub = ctx.Runtime.RegisterHandler(core.HandlerRegistration{
		EventName: primitives.EventStart,
		Owner:     block.Key,
		Scope:     primitives.ScopeActive,
		Fn: func(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
			return core.HandlerResponse{
				Handled:        true,
				ShouldContinue: false,
				Actions: []core.Action{
					core.NewAction(core.ActionPopBlock, core.PhaseStack, func(rt core.Runtime) error {
						rt.PopBlock()
						return nil
					}),
				},
			}
		},
	})
	return nil
}

func (g *IdleGateBehavior) OnDispose(ctx *core.BehaviorContext) {
	if g.unsub != nil {
		g.unsub()
	}
}

// WaitingToStartInjectorBehavior pushes an IdleGateBehavior child on mount
// so the block beneath it cannot advance until the user starts the session
// (spec.md §4.7, §4.8's Root composition).
type WaitingToStartInjectorBehavior struct {
	core.BaseBehavior
	pushed bool
}

func NewWaitingToStartInjectorBehavior() *WaitingToStartInjectorBehavior {
	return &WaitingToStartInjectorBehavior{}
}

func (w *WaitingToStartInjectorBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	if w.pushed {
		return nil
	}
	w.pushed = true
	parent := ctx.Block
	return []core.Action{
		core.NewAction(core.ActionPushBlock, core.PhaseStack, func(rt core.Runtime) error {
			gate := core.NewBlock(core.BlockKindIdle, &primitives.Statement{}, parent.Key, NewIdleGateBehavior())
			rt.PushBlock(gate)
			return nil
		}),
	}
}
