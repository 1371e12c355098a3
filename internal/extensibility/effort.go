package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// EffortBehavior displays an exercise card and waits for an explicit
// `next` event — a manually-advanced block, as opposed to TimerBehavior's
// clock-advanced one (spec.md §4.7).
type EffortBehavior struct {
	core.BaseBehavior
	unsub core.Unsubscribe
}

func NewEffortBehavior() *EffortBehavior { return &EffortBehavior{} }

func (e *EffortBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	block := ctx.Block
	e.unsub = ctx.Runtime.RegisterHandler(core.HandlerRegistration{
		EventName: primitives.EventNext,
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
	return []core.Action{
		core.NewAction(core.ActionPushCardDisplay, core.PhaseDisplay, func(core.Runtime) error {
			return nil
		}),
	}
}

func (e *EffortBehavior) OnUnmount(ctx *core.BehaviorContext) []core.Action {
	ctx.Runtime.UnregisterOwner(ctx.Block.Key)
	return []core.Action{
		core.NewAction(core.ActionPopCardDisplay, core.PhaseDisplay, func(core.Runtime) error {
			return nil
		}),
	}
}

func (e *EffortBehavior) OnDispose(ctx *core.BehaviorContext) {
	if e.unsub != nil {
		e.unsub()
	}
}
