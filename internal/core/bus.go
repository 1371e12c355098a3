package core

import "github.com/comalice/ironloop/internal/primitives"

// HandlerFunc handles a published event and returns whatever Actions the
// handler wants run, plus whether it wants to stop further dispatch for
// this event (rarely used; spec.md's onEvent hook exposes shouldContinue).
type HandlerFunc func(evt primitives.Event, rt Runtime) HandlerResponse

// HandlerResponse is the explicit, exception-free result of a handler
// invocation — spec.md §9's replacement for the source's exception-based
// handler cancellation.
type HandlerResponse struct {
	Handled       bool
	ShouldContinue bool
	Actions       []Action
}

// HandlerRegistration binds a handler to an event name, an owning block,
// and a dispatch scope.
type HandlerRegistration struct {
	ID        string
	Name      string
	EventName string
	Owner     primitives.BlockKey
	Scope     primitives.HandlerScope
	Fn        HandlerFunc
}

type registeredHandler struct {
	reg    HandlerRegistration
	active bool
}

// StackQuery answers the scope questions the bus needs without depending
// on the full Stack type, so EventBus stays independently testable.
type StackQuery interface {
	Contains(key primitives.BlockKey) bool
	IsTop(key primitives.BlockKey) bool
}

// EventBus dispatches named events to scope-filtered handlers in
// registration order (spec.md §4.4). Dispatch is single-threaded and
// non-reentrant: a publish triggered from inside a handler is queued and
// drained after the current batch, guaranteeing at-most-once delivery per
// handler per event.
//
// Grounded in the teacher's ChannelEventSource/TimerEventSource
// (internal/extensibility/eventsource.go) for the "named event, pluggable
// source" shape, and in core.Machine's event loop
// (internal/core/machine.go) for single-consumer queued dispatch —
// rewritten without goroutines or channels since spec.md §5 mandates a
// single logical thread of control.
type EventBus struct {
	stack      StackQuery
	handlers   []*registeredHandler
	nextHandler int
	queue      []primitives.Event
	dispatching bool
	onBatch    func([]Action)
}

// NewEventBus creates a bus bound to the given stack for scope resolution.
// onBatch receives the concatenated action list produced by each
// dispatched event's handlers — normally ActionProcessor.QueueMany.
func NewEventBus(stack StackQuery, onBatch func([]Action)) *EventBus {
	return &EventBus{stack: stack, onBatch: onBatch}
}

// Register adds a handler, returning an Unregister func.
func (b *EventBus) Register(reg HandlerRegistration) Unsubscribe {
	rh := &registeredHandler{reg: reg, active: true}
	b.handlers = append(b.handlers, rh)
	return func() { rh.active = false }
}

// UnregisterOwner deactivates every handler owned by the given block
// (called on block unmount, spec.md §4.6).
func (b *EventBus) UnregisterOwner(owner primitives.BlockKey) {
	for _, h := range b.handlers {
		if h.reg.Owner == owner {
			h.active = false
		}
	}
}

// Publish dispatches an event. If dispatch is already in progress the
// event is queued and drained after the current batch completes
// (non-reentrant guarantee, spec.md §4.4).
func (b *EventBus) Publish(evt primitives.Event, rt Runtime) {
	if b.dispatching {
		b.queue = append(b.queue, evt)
		return
	}
	b.dispatching = true
	b.dispatchOne(evt, rt)
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.dispatchOne(next, rt)
	}
	b.dispatching = false
}

func (b *EventBus) dispatchOne(evt primitives.Event, rt Runtime) {
	var actions []Action
	for _, h := range b.handlers {
		if !h.active || h.reg.EventName != evt.Name {
			continue
		}
		if !b.scopeMatches(h.reg) {
			continue
		}
		resp, err := b.invoke(h.reg, evt, rt)
		if err != nil {
			if rt != nil {
				rt.AddOutput("", OutputSystem, []primitives.Fragment{
					primitives.NewFragment(primitives.KindText, primitives.OriginRuntime, err.Error()),
				})
			}
			continue
		}
		actions = append(actions, resp.Actions...)
		if resp.Handled && !resp.ShouldContinue {
			break
		}
	}
	if b.onBatch != nil && len(actions) > 0 {
		b.onBatch(actions)
	}
}

// invoke calls a handler, converting a panic into a HandlerFailure so one
// misbehaving handler can never abort dispatch for the rest (spec.md §7:
// "Caught by the event bus; logged; other handlers still fire").
func (b *EventBus) invoke(reg HandlerRegistration, evt primitives.Event, rt Runtime) (resp HandlerResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerFailure{HandlerID: reg.ID, EventName: evt.Name, Err: panicError{r}}
		}
	}()
	resp = reg.Fn(evt, rt)
	return resp, nil
}

func (b *EventBus) scopeMatches(reg HandlerRegistration) bool {
	switch reg.Scope {
	case primitives.ScopeGlobal:
		return true
	case primitives.ScopeBlock:
		return b.stack.Contains(reg.Owner)
	case primitives.ScopeActive:
		return b.stack.IsTop(reg.Owner)
	default:
		return false
	}
}
