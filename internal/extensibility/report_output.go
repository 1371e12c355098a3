package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// ReportOutputBehavior is the sibling that turns a block's own lifecycle
// into the output stream (spec.md §4.7): a segment on mount, a milestone
// whenever a sibling RoundsBehavior reports a completed pass, and a
// completion statement carrying Elapsed/Total/Spans on unmount. It reads
// every other fragment it needs off the shared block memory rather than
// holding references to the sibling behaviors that own it.
type ReportOutputBehavior struct {
	core.BaseBehavior
	Label string
}

// NewReportOutputBehavior builds a report sibling with the given display
// label (used only for the initial segment output).
func NewReportOutputBehavior(label string) *ReportOutputBehavior {
	return &ReportOutputBehavior{Label: label}
}

// OnMount emits a segment output carrying the block's label, when it has
// one — a session-container block with no display label of its own (the
// Root block) has nothing to report here and skips straight to reporting
// milestones and its eventual completion.
func (r *ReportOutputBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	if r.Label == "" {
		return nil
	}
	block := ctx.Block
	frag := primitives.NewLabelFragment(primitives.OriginRuntime, r.Label)
	return []core.Action{
		core.NewAction(core.ActionEmitOutput, core.PhaseEvent, func(rt core.Runtime) error {
			rt.AddOutput(block.Key, core.OutputSegment, []primitives.Fragment{frag})
			return nil
		}),
	}
}

func (r *ReportOutputBehavior) OnNext(ctx *core.BehaviorContext) []core.Action {
	block := ctx.Block
	for _, loc := range block.Memory.GetByTag(core.TagChildrenStatus) {
		for _, f := range loc.Fragments() {
			cv, ok := f.ChildrenStatus()
			if ok && cv.AllCompleted {
				return []core.Action{
					core.NewAction(core.ActionEmitOutput, core.PhaseEvent, func(rt core.Runtime) error {
						rt.AddOutput(block.Key, core.OutputMetric, []primitives.Fragment{f})
						return nil
					}),
				}
			}
		}
	}
	return nil
}

func (r *ReportOutputBehavior) OnUnmount(ctx *core.BehaviorContext) []core.Action {
	block := ctx.Block
	spans, elapsed, total := r.collectSpans(block)
	return []core.Action{
		core.NewAction(core.ActionEmitOutput, core.PhaseEvent, func(rt core.Runtime) error {
			frags := []primitives.Fragment{
				primitives.NewFragment(primitives.KindElapsed, primitives.OriginRuntime, elapsed),
				primitives.NewFragment(primitives.KindTotal, primitives.OriginRuntime, total),
				primitives.NewSpansFragment(primitives.OriginRuntime, spans),
				primitives.NewFragment(primitives.KindSystemTime, primitives.OriginRuntime, primitives.EpochMs(ctx.Runtime.Now())),
			}
			rt.AddOutput(block.Key, core.OutputCompletion, frags)
			return nil
		}),
	}
}

// collectSpans reads every TagTimer location's span history off the
// block's own memory, reporting (spans, elapsed, total) — elapsed sums
// closed-span durations, total is the DurationMs of the last Timer
// fragment found in that memory, or elapsed when that value is zero.
func (r *ReportOutputBehavior) collectSpans(block *core.Block) ([]primitives.TimeSpan, int64, int64) {
	var spans []primitives.TimeSpan
	var elapsed int64
	var total int64
	for _, loc := range block.Memory.GetByTag(core.TagTimer) {
		for _, f := range loc.Fragments() {
			if s, ok := f.Spans(); ok {
				spans = append(spans, s...)
				for _, span := range s {
					if span.Ended != nil {
						elapsed += span.Duration(*span.Ended)
					}
				}
			}
			if tv, ok := f.Timer(); ok {
				total = tv.DurationMs
			}
		}
	}
	if total == 0 {
		total = elapsed
	}
	return spans, elapsed, total
}
