// Package jit turns parsed Statements into mounted-ready Blocks, choosing
// and composing each block's Behavior list by the fragment kinds the
// statement carries (spec.md §4.8).
package jit

import (
	"github.com/comalice/ironloop/internal/core"
	"github.com/comalice/ironloop/internal/extensibility"
	"github.com/comalice/ironloop/internal/primitives"
)

// DefaultRestMinMs is the remaining-time floor below which an AMRAP loop
// stops inserting rest blocks between passes. The spec names the
// injectRest behavior but not a numeric threshold; thirty seconds is
// judged long enough to be worth a rest and short enough not to eat a
// near-finished countdown (an Open Question decision, see DESIGN.md).
const DefaultRestMinMs = 30_000

// Compile turns a statement into a not-yet-mounted Block, selecting the
// behavior by which fragment kinds the statement carries (spec.md §4.8).
// A statement with no recognizable shape still compiles — as a plain
// child-list — rather than failing, so an unsupported exercise kind
// degrades to "run its children" instead of stalling the whole stack.
func Compile(stmt *primitives.Statement, parent primitives.BlockKey) (*core.Block, error) {
	if stmt == nil {
		return nil, &core.CompilationError{StatementID: "", Reason: "nil statement"}
	}

	kind, behavior := selectBehavior(stmt)
	block := core.NewBlock(kind, stmt, parent, behavior)
	block.Display = core.NewFragmentView([][]primitives.Fragment{stmt.Fragments}, nil)
	return block, nil
}

// CompileRoot builds the SessionRoot block per spec.md §4.8's fixed
// composition: an up-counting session timer, a skip-on-mount child
// selector gated by an idle injector until the user's first `start`, a
// report sibling, a full button surface, and a history marker. The given
// statement becomes Root's single child — wrapped rather than flattened,
// so a script that is itself a Timer or Rounds statement still compiles
// to that statement's own behavior one level down, exactly as if it had
// been pushed by a child-select (spec.md Testable Scenario S1).
func CompileRoot(stmt *primitives.Statement) (*core.Block, error) {
	if stmt == nil {
		return nil, &core.CompilationError{StatementID: "", Reason: "nil root statement"}
	}
	wrapper := &primitives.Statement{ID: "root", Children: []*primitives.Statement{stmt}}
	behavior := core.NewCompositeBehavior(
		extensibility.NewTimerBehavior(extensibility.TimerConfig{Direction: primitives.DirectionUp, Label: "Workout"}),
		extensibility.NewWaitingToStartInjectorBehavior(),
		extensibility.NewChildListBehavior(true),
		extensibility.NewReportOutputBehavior(""),
		extensibility.NewButtonsBehavior(extensibility.ButtonSet{Pause: true, Resume: true, Skip: true, Reset: true}),
		extensibility.NewHistoryRecordBehavior(),
	)
	block := core.NewBlock(core.BlockKindRoot, wrapper, "", behavior)
	block.Display = core.NewFragmentView(nil, nil)
	return block, nil
}

func selectBehavior(stmt *primitives.Statement) (core.BlockKind, core.Behavior) {
	switch {
	case stmt.HasKind(primitives.KindTimer):
		return compileTimer(stmt)

	case stmt.HasKind(primitives.KindRounds):
		return compileRounds(stmt)

	case stmt.HasKind(primitives.KindEffort):
		label := ""
		if frags := stmt.FragmentsOfKind(primitives.KindEffort); len(frags) > 0 {
			label = frags[0].Text()
		}
		return core.BlockKindEffort, core.NewCompositeBehavior(
			extensibility.NewEffortBehavior(),
			extensibility.NewReportOutputBehavior(label),
			extensibility.NewButtonsBehavior(extensibility.ButtonSet{Skip: true}),
		)

	case stmt.HasKind(primitives.KindLabel) && len(stmt.Children) == 0:
		frags := stmt.FragmentsOfKind(primitives.KindLabel)
		text := ""
		if len(frags) > 0 {
			text = frags[0].Text()
		}
		return core.BlockKindLabel, extensibility.NewLabelBehavior(text)

	default:
		return core.BlockKindChildList, extensibility.NewChildListBehavior(false)
	}
}

func compileTimer(stmt *primitives.Statement) (core.BlockKind, core.Behavior) {
	frags := stmt.FragmentsOfKind(primitives.KindTimer)
	cfg := extensibility.TimerConfig{Direction: primitives.DirectionDown}
	if len(frags) > 0 {
		if tv, ok := frags[0].Timer(); ok {
			cfg = extensibility.TimerConfig{DurationMs: tv.DurationMs, Direction: tv.Direction}
		}
	}
	if stmt.HasKind(primitives.KindLabel) && isRestLabel(stmt) {
		return core.BlockKindRest, core.NewCompositeBehavior(
			extensibility.NewRestBehavior(cfg.DurationMs),
			extensibility.NewReportOutputBehavior("Rest"),
			extensibility.NewButtonsBehavior(extensibility.ButtonSet{Pause: true, Resume: true, Skip: true}),
		)
	}

	label := timerLabel(stmt)
	behaviors := []core.Behavior{extensibility.NewTimerBehavior(cfg)}

	if len(stmt.Children) > 0 {
		if rfrags := stmt.FragmentsOfKind(primitives.KindRounds); len(rfrags) > 0 {
			total := rfrags[0].Int()
			if total == 0 {
				// loop=timer-active: an AMRAP pass, looping until the
				// sibling timer's countdown closes its own span.
				injectRest := hasActionMarker(stmt, "inject-rest")
				behaviors = append(behaviors, extensibility.NewAMRAPRoundsBehavior(injectRest, DefaultRestMinMs))
			} else {
				behaviors = append(behaviors, extensibility.NewRoundsBehavior(total))
			}
		} else {
			behaviors = append(behaviors, extensibility.NewChildListBehavior(false))
		}
	}

	behaviors = append(behaviors,
		extensibility.NewReportOutputBehavior(label),
		extensibility.NewButtonsBehavior(extensibility.ButtonSet{Pause: true, Resume: true, Skip: true}),
	)
	return core.BlockKindTimer, core.NewCompositeBehavior(behaviors...)
}

func compileRounds(stmt *primitives.Statement) (core.BlockKind, core.Behavior) {
	total := 1
	if frags := stmt.FragmentsOfKind(primitives.KindRounds); len(frags) > 0 {
		total = frags[0].Int()
	}
	if total <= 0 {
		total = 1
	}
	return core.BlockKindRounds, core.NewCompositeBehavior(
		extensibility.NewRoundsBehavior(total),
		extensibility.NewReportOutputBehavior(""),
		extensibility.NewButtonsBehavior(extensibility.ButtonSet{Pause: true, Resume: true, Skip: true, Reset: true}),
	)
}

func timerLabel(stmt *primitives.Statement) string {
	for _, f := range stmt.FragmentsOfKind(primitives.KindLabel) {
		return f.Text()
	}
	return ""
}

func hasActionMarker(stmt *primitives.Statement, name string) bool {
	for _, f := range stmt.FragmentsOfKind(primitives.KindAction) {
		if f.Text() == name {
			return true
		}
	}
	return false
}

func isRestLabel(stmt *primitives.Statement) bool {
	for _, f := range stmt.FragmentsOfKind(primitives.KindLabel) {
		if f.Text() == "rest" {
			return true
		}
	}
	return false
}
