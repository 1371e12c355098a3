package ironloop

import (
	"errors"
	"time"

	"github.com/comalice/ironloop/clock"
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/jit"
	"github.com/comalice/ironloop/internal/primitives"
	"github.com/comalice/ironloop/internal/telemetry"
)

// DefaultTickInterval is how often a running Session advances its active
// timer blocks, absent an explicit WithTickInterval option.
const DefaultTickInterval = 100 * time.Millisecond

// Option configures a Session at construction.
type Option func(*Session)

// WithClock overrides the session's clock — tests pass a *clock.Mock so
// timer behavior can be driven deterministically.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clk = c }
}

// WithLogger attaches session identity to every structured log entry the
// session emits.
func WithLogger(meta telemetry.SessionMeta) Option {
	return func(s *Session) {
		s.logger = telemetry.NewLogger(meta)
		s.id = meta.SessionID
	}
}

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

// WithMaxPasses overrides the action processor's livelock guard
// (core.DefaultMaxPasses).
func WithMaxPasses(n int) Option {
	return func(s *Session) { s.processor.MaxPasses = n }
}

// Session is one running instance of a compiled workout script: the run
// stack, the event bus, the action processor, the output log, and the
// clock driving timer blocks. Session implements core.Runtime so the
// block/behavior tier can call back into it without an import cycle
// (spec.md §9).
//
// Grounded in the teacher's root Runtime (statechart.go, since removed)
// for the "single owning type assembling stack + bus + clock" shape.
type Session struct {
	id           string
	stack        core.Stack
	bus          *core.EventBus
	processor    *core.ActionProcessor
	output       core.OutputLog
	clk          clock.Clock
	logger       *telemetry.Logger
	tickInterval time.Duration
	span         primitives.TimeSpan
	rootStmt     *primitives.Statement
	cancelTick   clock.CancelFunc
	started      bool
	complete     bool
	err          error

	stackListeners  []func(StackSnapshot)
	outputListeners []func(OutputStatement)
}

// StackListener receives every StackSnapshot a Session publishes: an
// Initial snapshot at Start before the root push, one after every push and
// pop, and a Clear snapshot when an InvariantViolation clears the stack (spec.md §3, §4.9, §6).
type StackListener = func(StackSnapshot)

// OutputListener receives every OutputStatement as it is appended, in
// append order (spec.md §6's output-stream subscription contract).
type OutputListener = func(OutputStatement)

// SubscribeToStack registers a listener for every published StackSnapshot.
// Returns an idempotent unsubscribe func.
func (s *Session) SubscribeToStack(fn StackListener) func() {
	s.stackListeners = append(s.stackListeners, fn)
	idx := len(s.stackListeners) - 1
	return func() {
		if idx >= 0 && idx < len(s.stackListeners) {
			s.stackListeners[idx] = func(StackSnapshot) {}
		}
	}
}

// SubscribeToOutput registers a listener for every appended OutputStatement.
// Returns an idempotent unsubscribe func.
func (s *Session) SubscribeToOutput(fn OutputListener) func() {
	s.outputListeners = append(s.outputListeners, fn)
	idx := len(s.outputListeners) - 1
	return func() {
		if idx >= 0 && idx < len(s.outputListeners) {
			s.outputListeners[idx] = func(OutputStatement) {}
		}
	}
}

func (s *Session) publishStack(typ core.SnapshotType, affected primitives.BlockKey) {
	snap := s.stack.Snapshot(typ, affected, primitives.EpochMs(s.clk.Now()))
	for _, fn := range s.stackListeners {
		fn(snap)
	}
}

// NewSession compiles script into a root block and prepares a Session to
// run it. The root block is not mounted until Start is called.
func NewSession(script *primitives.Statement, opts ...Option) (*Session, error) {
	s := &Session{
		rootStmt:     script,
		clk:          clock.NewRealClock(),
		tickInterval: DefaultTickInterval,
		processor:    core.NewActionProcessor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = string(primitives.NewBlockKey())
	}
	if s.logger == nil {
		s.logger = telemetry.NewLogger(telemetry.SessionMeta{SessionID: s.id})
	}
	s.bus = core.NewEventBus(&s.stack, s.processor.QueueMany)
	return s, nil
}

// ID returns the session's identity, used to stamp log entries and to name
// an exported HistoryExport file (internal/production).
func (s *Session) ID() string { return s.id }

// Start mounts the root statement and begins the clock driving timer
// blocks. Calling Start more than once is a no-op.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	s.started = true
	s.span = primitives.NewOpenSpan(primitives.EpochMs(s.clk.Now()))

	s.publishStack(core.SnapshotInitial, "")

	root, err := jit.CompileRoot(s.rootStmt)
	if err != nil {
		return err
	}
	s.PushBlock(root)
	if err := s.drain(); err != nil {
		return err
	}

	last := s.clk.Now()
	s.cancelTick = s.clk.Every(s.tickInterval, func() {
		now := s.clk.Now()
		elapsed := now.Sub(last).Milliseconds()
		last = now
		s.Publish(primitives.NewEvent(primitives.EventTick, elapsed, now))
		s.drain()
	})

	s.Publish(primitives.NewEvent(primitives.EventStart, nil, s.clk.Now()))
	return s.drain()
}

// Stop halts the clock and marks the session complete, closing its
// overall time span.
func (s *Session) Stop() {
	if s.cancelTick != nil {
		s.cancelTick()
	}
	s.complete = true
	if s.span.IsOpen() {
		s.span = s.span.Close(primitives.EpochMs(s.clk.Now()))
	}
}

// Send publishes a named event (start, pause, resume, skip, reset, next,
// or a custom action name) and drains the resulting actions.
func (s *Session) Send(name string, data any) error {
	s.Publish(primitives.NewEvent(name, data, s.clk.Now()))
	return s.drain()
}

// Dispose pops every block on the stack, top to bottom, running each
// block's normal unmount/dispose lifecycle (spec.md §4.9's dispose()). Use
// this to tear down a session the user abandoned mid-run rather than ran
// to completion.
func (s *Session) Dispose() {
	if s.cancelTick != nil {
		s.cancelTick()
	}
	for s.stack.Depth() > 0 {
		s.PopBlock()
		_ = s.drain()
	}
	s.complete = true
}

// IsComplete reports whether the stack is empty and the session has
// finished running (spec.md §4.9's isComplete()) — distinct from Complete,
// which also reports true after Stop while blocks are still on the stack.
func (s *Session) IsComplete() bool {
	return s.complete && s.stack.Depth() == 0
}

func (s *Session) drain() error {
	err := s.processor.ProcessAllPhases(s)
	if err == nil {
		return nil
	}
	var iv *core.InvariantViolation
	if errors.As(err, &iv) {
		s.haltWithError(err)
	}
	return err
}

// haltWithError implements spec.md §7's InvariantViolation propagation
// policy: clear the stack, mark the session complete with an error, and
// publish a clear snapshot so subscribers see the teardown.
func (s *Session) haltWithError(err error) {
	s.logger.Error("session halted on invariant violation", map[string]any{"error": err.Error()})
	s.processor.Clear()
	for s.stack.Depth() > 0 {
		top := s.stack.Top()
		s.stack.Pop()
		top.Memory.ReleaseAll()
		top.Status = core.StatusDisposed
	}
	if s.cancelTick != nil {
		s.cancelTick()
	}
	s.publishStack(core.SnapshotClear, "")
	s.Publish(primitives.NewEvent(primitives.EventStackClear, nil, s.clk.Now()))
	s.complete = true
	s.err = err
}

// Err reports the fatal error that ended the session, if any.
func (s *Session) Err() error { return s.err }

// Complete reports whether the session has stopped running.
func (s *Session) Complete() bool { return s.complete }

// History returns every output statement recorded so far.
func (s *Session) History() []OutputStatement { return s.output.All() }

// Snapshot captures the current run stack as an ad-hoc query, not tied to
// any particular structural mutation (Type is SnapshotInitial).
func (s *Session) Snapshot() StackSnapshot {
	return s.stack.Snapshot(core.SnapshotInitial, "", primitives.EpochMs(s.clk.Now()))
}

func (s *Session) VisibleMemory(depth int) []*core.MemoryLocation { return s.stack.VisibleMemory(depth) }

// --- core.Runtime ---

func (s *Session) Now() time.Time { return s.clk.Now() }

func (s *Session) PushBlock(b *core.Block) {
	b.Status = core.StatusMounted
	s.stack.Push(b)
	ctx := core.NewBehaviorContext(b, s)
	s.processor.QueueMany(b.Behavior.OnMount(ctx))
	s.publishStack(core.SnapshotPush, b.Key)
	s.Publish(primitives.NewEvent(primitives.EventStackPush, b.Key, s.clk.Now()))
}

func (s *Session) PopBlock() *core.Block {
	top := s.stack.Top()
	if top == nil {
		return nil
	}
	ctx := core.NewBehaviorContext(top, s)
	s.processor.QueueMany(top.Behavior.OnUnmount(ctx))
	s.stack.Pop()
	top.Status = core.StatusUnmounted
	s.publishStack(core.SnapshotPop, top.Key)
	s.Publish(primitives.NewEvent(primitives.EventStackPop, top.Key, s.clk.Now()))
	top.Memory.ReleaseAll()
	top.Behavior.OnDispose(ctx)
	top.Status = core.StatusDisposed

	if parent := s.stack.Top(); parent != nil {
		parentCtx := core.NewBehaviorContext(parent, s)
		s.processor.QueueMany(parent.Behavior.OnNext(parentCtx))
	}
	return top
}

func (s *Session) TopBlock() *core.Block         { return s.stack.Top() }
func (s *Session) BlockAt(depth int) *core.Block { return s.stack.At(depth) }
func (s *Session) StackDepth() int               { return s.stack.Depth() }

func (s *Session) CompileChild(parent *core.Block, stmt *primitives.Statement) (*core.Block, error) {
	return jit.Compile(stmt, parent.Key)
}

func (s *Session) Publish(evt primitives.Event) { s.bus.Publish(evt, s) }

func (s *Session) RegisterHandler(reg core.HandlerRegistration) core.Unsubscribe {
	return s.bus.Register(reg)
}

func (s *Session) UnregisterOwner(owner primitives.BlockKey) {
	s.bus.UnregisterOwner(owner)
}

func (s *Session) AddOutput(blockKey primitives.BlockKey, outputType core.OutputType, fragments []primitives.Fragment) core.OutputStatement {
	stmt := s.output.Append(blockKey, outputType, s.stack.IndexOf(blockKey), fragments, primitives.EpochMs(s.clk.Now()))
	if outputType == core.OutputSystem {
		s.logger.Warn("system output recorded", map[string]any{"block": string(blockKey)})
	}
	for _, fn := range s.outputListeners {
		fn(stmt)
	}
	return stmt
}
