package extensibility

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/primitives"
)

// RestBehavior is a countdown timer block that additionally marks the
// session's display mode as "rest" for the duration of its mount, so
// external consumers can style a rest screen differently from an active
// effort (spec.md §10, restored from original_source/ — the distilled
// spec only names the generic timer block).
type RestBehavior struct {
	*TimerBehavior
}

// NewRestBehavior constructs a rest behavior with the given duration.
func NewRestBehavior(durationMs int64) *RestBehavior {
	return &RestBehavior{TimerBehavior: NewTimerBehavior(TimerConfig{DurationMs: durationMs, Direction: primitives.DirectionDown})}
}

func (r *RestBehavior) OnMount(ctx *core.BehaviorContext) []core.Action {
	actions := r.TimerBehavior.OnMount(ctx)
	return append(actions, core.NewAction(core.ActionUpdateDisplayMode, core.PhaseDisplay, func(core.Runtime) error {
		return nil
	}))
}

func (r *RestBehavior) OnUnmount(ctx *core.BehaviorContext) []core.Action {
	actions := r.TimerBehavior.OnUnmount(ctx)
	return append(actions, core.NewAction(core.ActionUpdateDisplayMode, core.PhaseDisplay, func(core.Runtime) error {
		return nil
	}))
}
