package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// LabelBehavior emits a single display fragment and immediately completes
// — a block that carries no timer and waits for nothing, such as a
// section heading ("Warmup") between exercise groups.
type LabelBehavior struct {
	core.BaseBehavior
	Text string
}

func NewLabelBehavior(text string) *LabelBehavior { return &LabelBehavior{Text: text} }

func (l *LabelBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	frag := primitives.NewLabelFragment(primitives.OriginRuntime, l.Text)
	block := ctx.Block
	return []core.Action{
		core.NewAction(core.ActionEmitOutput, core.PhaseEvent, func(rt core.Runtime) error {
			rt.AddOutput(block.Key, core.OutputSegment, []primitives.Fragment{frag})
			return nil
		}),
		core.NewAction(core.ActionPopBlock, core.PhaseStack, func(rt core.Runtime) error {
			rt.PopBlock()
			return nil
		}),
	}
}
