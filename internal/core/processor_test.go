package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAllPhasesRunsInPhaseOrder(t *testing.T) {
	rt := newFakeRuntime()
	p := NewActionProcessor()
	var order []string

	p.QueueMany([]Action{
		NewAction(ActionUpdateActions, PhaseStack, func(Runtime) error { order = append(order, "stack"); return nil }),
		NewAction(ActionEmitOutput, PhaseEvent, func(Runtime) error { order = append(order, "event"); return nil }),
		NewAction(ActionPushCardDisplay, PhaseDisplay, func(Runtime) error { order = append(order, "display"); return nil }),
		NewAction(ActionSetWorkoutState, PhaseMemory, func(Runtime) error { order = append(order, "memory"); return nil }),
		NewAction(ActionStartAllSpans, PhaseSideEffect, func(Runtime) error { order = append(order, "side_effect"); return nil }),
	})

	require.NoError(t, p.ProcessAllPhases(rt))
	assert.Equal(t, []string{"display", "memory", "side_effect", "event", "stack"}, order)
}

func TestProcessAllPhasesDrainsActionsQueuedDuringAPass(t *testing.T) {
	rt := newFakeRuntime()
	p := NewActionProcessor()
	var ran []string

	p.Queue(NewAction(ActionPushBlock, PhaseStack, func(Runtime) error {
		ran = append(ran, "first")
		p.Queue(NewAction(ActionPopBlock, PhaseStack, func(Runtime) error {
			ran = append(ran, "second")
			return nil
		}))
		return nil
	}))

	require.NoError(t, p.ProcessAllPhases(rt))
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, 0, p.Pending())
}

func TestProcessAllPhasesIsolatesActionFailure(t *testing.T) {
	rt := newFakeRuntime()
	p := NewActionProcessor()
	boom := errors.New("boom")
	var ranAfter bool

	p.QueueMany([]Action{
		NewAction(ActionEmitOutput, PhaseEvent, func(Runtime) error { return boom }),
		NewAction(ActionUpdateActions, PhaseStack, func(Runtime) error { ranAfter = true; return nil }),
	})

	require.NoError(t, p.ProcessAllPhases(rt))
	assert.True(t, ranAfter, "later actions in the batch must still run after an isolated failure")

	outputs := rt.output.All()
	require.Len(t, outputs, 1)
	assert.Equal(t, OutputSystem, outputs[0].OutputType)
}

func TestProcessAllPhasesIsolatesActionPanic(t *testing.T) {
	rt := newFakeRuntime()
	p := NewActionProcessor()

	p.Queue(NewAction(ActionEmitOutput, PhaseEvent, func(Runtime) error { panic("boom") }))

	require.NoError(t, p.ProcessAllPhases(rt))
	outputs := rt.output.All()
	require.Len(t, outputs, 1)
	assert.Equal(t, OutputSystem, outputs[0].OutputType)
}

func TestProcessAllPhasesGuardsAgainstLivelock(t *testing.T) {
	rt := newFakeRuntime()
	p := NewActionProcessor()
	p.MaxPasses = 3

	var requeue func(Runtime) error
	requeue = func(Runtime) error {
		p.Queue(NewAction(ActionEmitOutput, PhaseEvent, requeue))
		return nil
	}
	p.Queue(NewAction(ActionEmitOutput, PhaseEvent, requeue))

	err := p.ProcessAllPhases(rt)
	require.Error(t, err)
	var iv *InvariantViolation
	require.ErrorAs(t, err, &iv)
}
