package ironloop

import "github.com/comalice/ironloop/internal/primitives"

// StatementBuilder assembles a Statement tree programmatically — the
// external parser spec.md §1 scopes out of this module entirely, so
// callers (and this module's own tests) construct scripts with this
// fluent API instead.
//
// Grounded in the teacher's MachineBuilder (builder.go, since removed)
// for the "fluent builder returns a static config tree" shape, narrowed
// from a full compound/atomic/parallel state builder to the flatter
// statement-with-children-and-fragments shape spec.md §2 describes.
type StatementBuilder struct {
	stmt *Statement
}

// NewStatement starts a builder for a statement with the given ID.
func NewStatement(id string) *StatementBuilder {
	return &StatementBuilder{stmt: &Statement{ID: id}}
}

// With appends fragments to the statement.
func (b *StatementBuilder) With(fragments ...Fragment) *StatementBuilder {
	b.stmt.Fragments = append(b.stmt.Fragments, fragments...)
	return b
}

// Child appends a fully-built child statement.
func (b *StatementBuilder) Child(child *StatementBuilder) *StatementBuilder {
	b.stmt.Children = append(b.stmt.Children, child.Build())
	return b
}

// Children appends multiple child statements at once.
func (b *StatementBuilder) Children(children ...*StatementBuilder) *StatementBuilder {
	for _, c := range children {
		b.Child(c)
	}
	return b
}

// Build finalizes the statement tree.
func (b *StatementBuilder) Build() *Statement {
	return b.stmt
}

// Timer builds a single timer child statement.
func Timer(id string, durationMs int64, dir primitives.TimerDirection) *StatementBuilder {
	return NewStatement(id).With(NewTimerFragment(primitives.OriginParser, durationMs, dir))
}

// Rest builds a timer child statement labeled "rest", compiling to a
// BlockKindRest block instead of a plain timer.
func Rest(id string, durationMs int64) *StatementBuilder {
	return NewStatement(id).With(
		NewTimerFragment(primitives.OriginParser, durationMs, primitives.DirectionDown),
		NewLabelFragment(primitives.OriginParser, "rest"),
	)
}

// Effort builds a manually-advanced exercise card child statement.
func Effort(id, label string) *StatementBuilder {
	return NewStatement(id).With(NewEffortFragment(primitives.OriginParser, label))
}

// Label builds a plain display-only child statement.
func Label(id, text string) *StatementBuilder {
	return NewStatement(id).With(NewLabelFragment(primitives.OriginParser, text))
}

// Rounds builds a statement that repeats its children totalRounds times.
func Rounds(id string, totalRounds int, children ...*StatementBuilder) *StatementBuilder {
	return NewStatement(id).With(NewRoundsFragment(primitives.OriginParser, totalRounds)).Children(children...)
}

// AMRAP builds a Timer(durationMs, down) wrapping children that loop
// indefinitely until the countdown closes its span — "as many rounds as
// possible" (spec.md Testable Scenario S3). A Rounds fragment carrying 0
// is the loop=timer-active marker the jit tier recognizes; injectRest
// additionally inserts a rest block between passes while time remains.
func AMRAP(id string, durationMs int64, injectRest bool, children ...*StatementBuilder) *StatementBuilder {
	b := NewStatement(id).With(
		NewTimerFragment(primitives.OriginParser, durationMs, primitives.DirectionDown),
		NewRoundsFragment(primitives.OriginParser, 0),
	)
	if injectRest {
		b.With(NewActionFragment(primitives.OriginCompiler, "inject-rest"))
	}
	return b.Children(children...)
}
