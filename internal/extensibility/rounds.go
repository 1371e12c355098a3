package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// LoopMode selects how a RoundsBehavior decides to wrap back to its first
// child instead of popping itself (spec.md §4.7's ChildSelectionBehavior
// loop conditions).
type LoopMode int

const (
	// LoopFixedRounds repeats for a fixed round count, advancing `round`
	// memory on every full pass and popping once current > total.
	LoopFixedRounds LoopMode = iota
	// LoopTimerActive repeats indefinitely while a sibling timer's span is
	// still open (AMRAP) — the timer itself, not this behavior, pops the
	// shared block once the countdown reaches zero.
	LoopTimerActive
)

// RoundsBehavior sequentially pushes a statement's children, looping back
// to the first child according to Mode, and maintains the children:status
// bookkeeping a sibling ReportOutputBehavior reads
// (spec.md §4.7's ChildSelectionBehavior). Composed under TimerBehavior
// when the statement mixes Timer and Rounds fragments (Timer outer, Rounds
// inner per spec.md §4.8's tie-break).
type RoundsBehavior struct {
	core.BaseBehavior
	mode       LoopMode
	rounds     core.RoundState
	injectRest bool
	restMinMs  int64
	restOwner  primitives.BlockKey

	loc         *core.MemoryLocation
	childrenLoc *core.MemoryLocation
	restPending bool
}

// NewRoundsBehavior constructs a fixed-round-count behavior for the given
// total.
func NewRoundsBehavior(total int) *RoundsBehavior {
	return &RoundsBehavior{mode: LoopFixedRounds, rounds: core.RoundState{Current: 1, Total: total}}
}

// NewAMRAPRoundsBehavior constructs an "as many rounds as possible"
// behavior that loops its children until a sibling timer's span closes.
// When injectRest is true and the sibling timer's remaining time exceeds
// restMinMs after a full pass, a rest block is inserted before the next
// pass (spec.md Testable Scenario S3).
func NewAMRAPRoundsBehavior(injectRest bool, restMinMs int64) *RoundsBehavior {
	return &RoundsBehavior{mode: LoopTimerActive, injectRest: injectRest, restMinMs: restMinMs}
}

func (r *RoundsBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	if r.mode == LoopFixedRounds {
		r.loc = ctx.Block.Memory.Push(core.NewMemoryLocation(core.TagRound, []primitives.Fragment{r.currentFragment()}))
	}
	r.childrenLoc = ctx.Block.Memory.Push(core.NewMemoryLocation(core.TagChildrenStatus, []primitives.Fragment{r.statusFragment(ctx)}))
	return r.advanceOrPop(ctx)
}

func (r *RoundsBehavior) OnNext(ctx *core.BehaviorContext) []core.Action {
	if r.restPending {
		r.restPending = false
	}
	if ctx.Block.HasMoreChildren() {
		return r.pushNextChild(ctx)
	}
	r.updateStatus(ctx, true, true)

	if r.mode == LoopTimerActive {
		return r.nextAMRAPPass(ctx)
	}

	if r.rounds.Advance() {
		return []core.Action{
			core.NewAction(core.ActionPopBlock, core.PhaseStack, func(rt core.Runtime) error {
				rt.PopBlock()
				return nil
			}),
		}
	}
	ctx.Block.ResetChild()
	return r.advanceOrPop(ctx)
}

// nextAMRAPPass decides, after one full pass over the children, whether to
// insert a rest block (injectRest, timer remaining above restMinMs) or
// wrap straight back to the first child. It never pops the block itself —
// that is the sibling TimerBehavior's job once its countdown reaches zero.
func (r *RoundsBehavior) nextAMRAPPass(ctx *core.BehaviorContext) []core.Action {
	ctx.Block.ResetChild()
	if r.injectRest && !r.restPending {
		if remaining, ok := r.timerRemaining(ctx); ok && remaining > r.restMinMs {
			r.restPending = true
			block := ctx.Block
			return []core.Action{
				core.NewAction(core.ActionPushRestBlock, core.PhaseStack, func(rt core.Runtime) error {
					child := core.NewBlock(core.BlockKindRest, &primitives.Statement{}, block.Key, NewRestBehavior(remaining))
					rt.PushBlock(child)
					return nil
				}),
			}
		}
	}
	return r.pushNextChild(ctx)
}

// timerRemaining reads a sibling TimerBehavior's published remaining
// duration out of the shared block memory, rather than holding a direct
// reference to the sibling.
func (r *RoundsBehavior) timerRemaining(ctx *core.BehaviorContext) (int64, bool) {
	for _, loc := range ctx.Block.Memory.GetByTag(core.TagTimer) {
		for _, f := range loc.Fragments() {
			if tv, ok := f.Timer(); ok {
				return tv.DurationMs, true
			}
		}
	}
	return 0, false
}

func (r *RoundsBehavior) advanceOrPop(ctx *core.BehaviorContext) []core.Action {
	var actions []core.Action
	if r.mode == LoopFixedRounds {
		actions = append(actions, core.NewAction(core.ActionSetWorkoutState, core.PhaseMemory, func(core.Runtime) error {
			r.loc.Update([]primitives.Fragment{r.currentFragment()})
			return nil
		}))
	}
	return append(actions, r.pushNextChild(ctx)...)
}

func (r *RoundsBehavior) pushNextChild(ctx *core.BehaviorContext) []core.Action {
	if !ctx.Block.HasMoreChildren() {
		return nil
	}
	stmt := ctx.Block.Statement.Children[ctx.Block.ChildIndex()]
	ctx.Block.AdvanceChild()
	parent := ctx.Block
	return []core.Action{
		core.NewAction(core.ActionSetWorkoutState, core.PhaseMemory, func(core.Runtime) error {
			r.updateStatus(ctx, false, false)
			return nil
		}),
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

func (r *RoundsBehavior) currentFragment() primitives.Fragment {
	return primitives.NewFragment(primitives.KindCurrentRound, primitives.OriginRuntime,
		primitives.CurrentRoundValue{Current: r.rounds.Current, Total: r.rounds.Total})
}

func (r *RoundsBehavior) statusFragment(ctx *core.BehaviorContext) primitives.Fragment {
	total := 0
	if ctx.Block.Statement != nil {
		total = len(ctx.Block.Statement.Children)
	}
	return primitives.NewChildrenStatusFragment(primitives.OriginRuntime, primitives.ChildrenStatusValue{
		ChildIndex:    ctx.Block.ChildIndex(),
		TotalChildren: total,
		AllExecuted:   false,
	})
}

func (r *RoundsBehavior) updateStatus(ctx *core.BehaviorContext, allExecuted, allCompleted bool) {
	if r.childrenLoc == nil {
		return
	}
	v := r.statusFragment(ctx)
	cv, _ := v.ChildrenStatus()
	cv.AllExecuted = allExecuted
	cv.AllCompleted = allCompleted
	r.childrenLoc.Update([]primitives.Fragment{primitives.NewChildrenStatusFragment(primitives.OriginRuntime, cv)})
}
