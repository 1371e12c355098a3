package core

import "github.com/comalice/ironloop/internal/primitives"

// DefaultMaxPasses bounds how many times ProcessAllPhases will drain a
// wave of actions whose Do callbacks keep queueing further actions, before
// giving up and reporting an InvariantViolation (spec.md §4.5's livelock
// guard).
const DefaultMaxPasses = 8

// ActionProcessor executes queued Actions in fixed phase order — display,
// memory, side_effect, event, stack — within each pass, and keeps passing
// over newly queued actions (produced by a Do callback queueing more work)
// until a pass produces nothing new or MaxPasses is exhausted.
//
// Grounded in the teacher's core.Machine transition-action execution loop
// (internal/core/machine.go), rewritten from SCXML's single-transition
// action list into a cross-phase, multi-pass queue so that display actions
// from a later-queued Action still run before any side_effect action
// queued earlier (spec.md §4.5).
type ActionProcessor struct {
	MaxPasses int
	pending   []Action
}

// NewActionProcessor creates a processor with the default livelock guard.
func NewActionProcessor() *ActionProcessor {
	return &ActionProcessor{MaxPasses: DefaultMaxPasses}
}

// Queue adds a single action to the current pending batch.
func (p *ActionProcessor) Queue(a Action) {
	p.pending = append(p.pending, a)
}

// QueueMany adds every action in the slice to the current pending batch.
func (p *ActionProcessor) QueueMany(actions []Action) {
	p.pending = append(p.pending, actions...)
}

// ProcessAllPhases drains the pending queue: each pass groups the current
// batch by Phase in display/memory/side_effect/event/stack order, runs
// each Do in that order, and any actions a Do queues via Queue/QueueMany
// during this pass are collected into the next pass. It returns once a
// pass queues nothing new, or reports an InvariantViolation once MaxPasses
// passes have run without quiescing.
//
// A single Do returning an error is isolated per spec.md §7: the action is
// marked failed and recorded as a "system" OutputStatement via
// rt.AddOutput, but the batch — and every later phase and pass — still
// runs. Only the livelock guard (MaxPasses exhausted) returns a non-nil
// InvariantViolation, since that is the one failure mode spec.md §7 says
// is fatal to the session.
func (p *ActionProcessor) ProcessAllPhases(rt Runtime) error {
	max := p.MaxPasses
	if max <= 0 {
		max = DefaultMaxPasses
	}
	for pass := 0; pass < max; pass++ {
		batch := p.pending
		p.pending = nil
		if len(batch) == 0 {
			return nil
		}
		byPhase := make([][]Action, phaseCount)
		for _, a := range batch {
			byPhase[a.Phase] = append(byPhase[a.Phase], a)
		}
		for phase := Phase(0); phase < phaseCount; phase++ {
			for _, a := range byPhase[phase] {
				if a.Do == nil {
					continue
				}
				if err := p.runAction(a, phase, rt); err != nil {
					p.reportFailure(err, rt)
				}
			}
		}
	}
	if len(p.pending) > 0 {
		return &InvariantViolation{Reason: "action processor exceeded max passes without quiescing"}
	}
	return nil
}

// runAction invokes a.Do, converting a panic into an ActionFailure so a
// single misbehaving behavior/handler never takes down the whole session
// (spec.md §7's "action processor isolates failures" extended to panics,
// the same guarantee the event bus gives handlers).
func (p *ActionProcessor) runAction(a Action, phase Phase, rt Runtime) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ActionFailure{ActionType: string(a.Type), Phase: phase, Err: panicError{r}}
		}
	}()
	if doErr := a.Do(rt); doErr != nil {
		return &ActionFailure{ActionType: string(a.Type), Phase: phase, Err: doErr}
	}
	return nil
}

func (p *ActionProcessor) reportFailure(err error, rt Runtime) {
	if rt == nil {
		return
	}
	rt.AddOutput("", OutputSystem, []primitives.Fragment{
		primitives.NewFragment(primitives.KindText, primitives.OriginRuntime, err.Error()),
	})
}

type panicError struct{ v any }

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic: " + formatPanic(p.v)
}

func formatPanic(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "non-string panic value"
}

// Pending reports how many actions are queued for the next pass.
func (p *ActionProcessor) Pending() int { return len(p.pending) }

// Clear drops every pending action without running it. Intended only for
// teardown (spec.md §4.5) — e.g. a Session halting on InvariantViolation.
func (p *ActionProcessor) Clear() { p.pending = nil }

// CurrentPhase is unused outside of introspection: ProcessAllPhases always
// drains a full pass before returning, so there is no phase "currently
// draining" visible between calls (spec.md §4.5's currentPhase() is a
// no-op placeholder for this synchronous implementation).
func (p *ActionProcessor) CurrentPhase() (Phase, bool) { return 0, false }
