package core

import "github.com/comalice/ironloop/internal/primitives"

// BehaviorContext is the narrow view of a Block and its Runtime a Behavior
// method receives — it exists so behaviors cannot reach other blocks'
// internals directly, only through Runtime's callback surface (spec.md
// §4.6).
type BehaviorContext struct {
	Block   *Block
	Runtime Runtime
}

// NewBehaviorContext pairs a block with the runtime it is mounted under.
func NewBehaviorContext(b *Block, rt Runtime) *BehaviorContext {
	return &BehaviorContext{Block: b, Runtime: rt}
}

// Behavior is the extension point every Block kind implements (spec.md
// §4.6-§4.7): timer, rounds, rest, effort display, label, report, and
// child-list iteration are all Behaviors sharing this interface.
//
// Grounded in the teacher's DefaultActionRunner/LoggingActionRunner
// decorator pair (internal/extensibility/actionrunner.go) for the
// "lifecycle hook returns actions, runtime executes them" shape,
// generalized from SCXML's fixed entry/exit/invoke triad to the five
// workout-block hooks below.
type Behavior interface {
	// OnMount runs once when the block is pushed onto the stack. It
	// returns the Actions that establish the block's initial display and
	// memory state.
	OnMount(ctx *BehaviorContext) []Action

	// OnNext runs when the block receives an advance signal (a `next`
	// event reaching it, or its own timer/child completion). It returns
	// the Actions for the resulting state change, which may include
	// popping the block itself.
	OnNext(ctx *BehaviorContext) []Action

	// OnUnmount runs once when the block is about to be popped, before its
	// memory locations are released.
	OnUnmount(ctx *BehaviorContext) []Action

	// OnDispose runs after unmount once the block is fully removed from
	// the stack, for any cleanup that must happen after every memory
	// location has been released (e.g. cancelling a clock subscription).
	OnDispose(ctx *BehaviorContext)

	// OnEvent handles a bus event scoped to this block, returning whether
	// it was handled and any resulting Actions.
	OnEvent(ctx *BehaviorContext, evt primitives.Event) HandlerResponse
}

// BaseBehavior implements every Behavior method as a no-op, so concrete
// behaviors can embed it and override only the hooks they need — most
// block kinds care about OnMount and OnNext but not OnDispose or OnEvent.
type BaseBehavior struct{}

func (BaseBehavior) OnMount(*BehaviorContext) []Action   { return nil }
func (BaseBehavior) OnNext(*BehaviorContext) []Action    { return nil }
func (BaseBehavior) OnUnmount(*BehaviorContext) []Action { return nil }
func (BaseBehavior) OnDispose(*BehaviorContext)          {}
func (BaseBehavior) OnEvent(*BehaviorContext, primitives.Event) HandlerResponse {
	return HandlerResponse{}
}

// CompositeBehavior runs an ordered list of Behaviors as one, concatenating
// each hook's Actions in list order and disposing in reverse order (the
// last-mounted sibling unwinds first) — the ordered behavior list a single
// block composes from (spec.md §4.6's behavior composition). Siblings do
// not hold references to one another; a sibling that needs another's state
// reads it back out of the block's shared Memory.
type CompositeBehavior struct {
	Behaviors []Behavior
}

// NewCompositeBehavior builds a CompositeBehavior from the given behaviors
// in mount order.
func NewCompositeBehavior(behaviors ...Behavior) *CompositeBehavior {
	return &CompositeBehavior{Behaviors: behaviors}
}

func (c *CompositeBehavior) OnMount(ctx *BehaviorContext) []Action {
	var actions []Action
	for _, b := range c.Behaviors {
		actions = append(actions, b.OnMount(ctx)...)
	}
	return actions
}

func (c *CompositeBehavior) OnNext(ctx *BehaviorContext) []Action {
	var actions []Action
	for _, b := range c.Behaviors {
		actions = append(actions, b.OnNext(ctx)...)
	}
	return actions
}

func (c *CompositeBehavior) OnUnmount(ctx *BehaviorContext) []Action {
	var actions []Action
	for _, b := range c.Behaviors {
		actions = append(actions, b.OnUnmount(ctx)...)
	}
	return actions
}

func (c *CompositeBehavior) OnDispose(ctx *BehaviorContext) {
	for i := len(c.Behaviors) - 1; i >= 0; i-- {
		c.Behaviors[i].OnDispose(ctx)
	}
}

// OnEvent dispatches to every sibling in order, collecting their Actions.
// It stops at the first sibling that both handles the event and signals it
// should not continue to later siblings.
func (c *CompositeBehavior) OnEvent(ctx *BehaviorContext, evt primitives.Event) HandlerResponse {
	resp := HandlerResponse{ShouldContinue: true}
	for _, b := range c.Behaviors {
		r := b.OnEvent(ctx, evt)
		if r.Handled {
			resp.Handled = true
		}
		resp.Actions = append(resp.Actions, r.Actions...)
		if r.Handled && !r.ShouldContinue {
			resp.ShouldContinue = false
			return resp
		}
	}
	return resp
}
