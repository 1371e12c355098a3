package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// TimerBehavior drives a countdown or count-up timer block (spec.md §4.7).
// It owns a TagTimer memory location republishing the current
// remaining/elapsed duration as a runtime-origin fragment alongside the
// recorded TimeSpan history, and pops itself once a countdown reaches
// zero. It subscribes to pause/resume/stop in addition to tick so a
// countdown can be held open across a user pause without losing elapsed
// time (spec.md §3's TimerState, Testable Scenario S4).
type TimerBehavior struct {
	core.BaseBehavior
	cfg    TimerConfig
	state  core.TimerState
	loc    *core.MemoryLocation
	unsubs []core.Unsubscribe

	spans []primitives.TimeSpan
}

// TimerConfig is the compiled configuration a TimerBehavior starts from —
// the jit tier fills this in from the block's resolved fragments.
type TimerConfig struct {
	DurationMs int64
	Direction  primitives.TimerDirection
	Label      string
}

// NewTimerBehavior constructs a timer behavior for the given config. The
// timer auto-starts on mount; gating an entire script behind an explicit
// start event is WaitingToStartInjectorBehavior's job (it defers pushing
// any timed child until the user's first `start`), not this behavior's.
func NewTimerBehavior(cfg TimerConfig) *TimerBehavior {
	return &TimerBehavior{cfg: cfg}
}

func (t *TimerBehavior) initialRemaining() int64 {
	if t.cfg.Direction == primitives.DirectionDown {
		return t.cfg.DurationMs
	}
	return 0
}

func (t *TimerBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	t.state = core.TimerState{
		DurationMs:  t.cfg.DurationMs,
		RemainingMs: t.initialRemaining(),
		Direction:   t.cfg.Direction,
		Running:     true,
	}
	startMs := primitives.EpochMs(ctx.Runtime.Now())
	t.spans = []primitives.TimeSpan{primitives.NewOpenSpan(startMs)}

	initial := primitives.NewTimerFragment(primitives.OriginRuntime, t.state.RemainingMs, t.cfg.Direction)
	t.loc = ctx.Block.Memory.Push(core.NewMemoryLocation(core.TagTimer, []primitives.Fragment{
		initial, primitives.NewSpansFragment(primitives.OriginRuntime, t.spans),
	}))

	block := ctx.Block
	t.unsubs = []core.Unsubscribe{
		ctx.Runtime.RegisterHandler(core.HandlerRegistration{EventName: primitives.EventTick, Owner: block.Key, Scope: primitives.ScopeBlock, Fn: t.onTick}),
		ctx.Runtime.RegisterHandler(core.HandlerRegistration{EventName: primitives.EventPause, Owner: block.Key, Scope: primitives.ScopeActive, Fn: t.onPause}),
		ctx.Runtime.RegisterHandler(core.HandlerRegistration{EventName: primitives.EventTimerPause, Owner: block.Key, Scope: primitives.ScopeBlock, Fn: t.onPause}),
		ctx.Runtime.RegisterHandler(core.HandlerRegistration{EventName: primitives.EventResume, Owner: block.Key, Scope: primitives.ScopeActive, Fn: t.onResume}),
		ctx.Runtime.RegisterHandler(core.HandlerRegistration{EventName: primitives.EventStop, Owner: block.Key, Scope: primitives.ScopeActive, Fn: t.onStop}),
	}

	return []core.Action{
		core.NewAction(core.ActionPushTimerDisplay, core.PhaseDisplay, func(core.Runtime) error {
			return nil
		}),
	}
}

func (t *TimerBehavior) publish() {
	frag := primitives.NewTimerFragment(primitives.OriginRuntime, t.state.RemainingMs, t.cfg.Direction)
	t.loc.Update([]primitives.Fragment{frag, primitives.NewSpansFragment(primitives.OriginRuntime, t.spans)})
}

func (t *TimerBehavior) onTick(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
	if !t.state.Running {
		return core.HandlerResponse{Handled: true, ShouldContinue: true}
	}
	elapsed, _ := evt.Data.(int64)
	reachedZero := t.state.Tick(elapsed)

	actions := []core.Action{
		core.NewAction(core.ActionPushTimerDisplay, core.PhaseMemory, func(core.Runtime) error {
			t.publish()
			return nil
		}),
	}
	if reachedZero {
		t.closeSpan(primitives.EpochMs(evt.Timestamp))
		actions = append(actions, core.NewAction(core.ActionPopTimerDisplay, core.PhaseStack, func(rt core.Runtime) error {
			rt.PopBlock()
			rt.Publish(primitives.NewEvent(primitives.EventComplete, nil, rt.Now()))
			return nil
		}))
	}
	return core.HandlerResponse{Handled: true, ShouldContinue: true, Actions: actions}
}

// closeSpan closes the last recorded span, if still open, regardless of
// TimerState.Running — Tick already flips Running to false the instant a
// countdown reaches zero, so this cannot gate on that flag without missing
// the final close.
func (t *TimerBehavior) closeSpan(atMs int64) {
	if len(t.spans) == 0 {
		return
	}
	last := len(t.spans) - 1
	if t.spans[last].IsOpen() {
		t.spans[last] = t.spans[last].Close(atMs)
	}
}

func (t *TimerBehavior) onPause(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
	t.state.Pause()
	t.closeSpan(primitives.EpochMs(evt.Timestamp))
	return core.HandlerResponse{Handled: true, ShouldContinue: true, Actions: []core.Action{
		core.NewAction(core.ActionPushTimerDisplay, core.PhaseMemory, func(core.Runtime) error { t.publish(); return nil }),
	}}
}

func (t *TimerBehavior) onResume(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
	if t.state.Running {
		return core.HandlerResponse{Handled: true, ShouldContinue: true}
	}
	t.spans = append(t.spans, primitives.NewOpenSpan(primitives.EpochMs(evt.Timestamp)))
	t.state.Resume()
	return core.HandlerResponse{Handled: true, ShouldContinue: true, Actions: []core.Action{
		core.NewAction(core.ActionPushTimerDisplay, core.PhaseMemory, func(core.Runtime) error { t.publish(); return nil }),
	}}
}

func (t *TimerBehavior) onStop(evt primitives.Event, rt core.Runtime) core.HandlerResponse {
	t.state.Pause()
	t.closeSpan(primitives.EpochMs(evt.Timestamp))
	return core.HandlerResponse{Handled: true, ShouldContinue: true, Actions: []core.Action{
		core.NewAction(core.ActionPushTimerDisplay, core.PhaseMemory, func(core.Runtime) error { t.publish(); return nil }),
	}}
}

// IsRunning reports whether the timer is still advancing on tick.
func (t *TimerBehavior) IsRunning() bool { return t.state.Running }

// Spans returns a copy of the timer's recorded TimeSpan history.
func (t *TimerBehavior) Spans() []primitives.TimeSpan {
	return append([]primitives.TimeSpan(nil), t.spans...)
}

// Remaining reports the timer's current remaining (countdown) or elapsed
// (count-up) duration in milliseconds.
func (t *TimerBehavior) Remaining() int64 { return t.state.RemainingMs }

func (t *TimerBehavior) OnUnmount(ctx *core.BehaviorContext) []core.Action {
	ctx.Runtime.UnregisterOwner(ctx.Block.Key)
	return nil
}

func (t *TimerBehavior) OnDispose(ctx *core.BehaviorContext) {
	for _, unsub := range t.unsubs {
		unsub()
	}
}
