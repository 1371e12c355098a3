package primitives

// Kind identifies the variant a Fragment carries. Frozen at build time per
// the spec's resolution of the source's conflicting MemoryTypeEnum
// definitions (see DESIGN.md): this is the complete, closed set.
type Kind string

const (
	KindTimer         Kind = "timer"
	KindRounds        Kind = "rounds"
	KindRep           Kind = "rep"
	KindEffort        Kind = "effort"
	KindResistance    Kind = "resistance"
	KindDistance      Kind = "distance"
	KindAction        Kind = "action"
	KindLabel         Kind = "label"
	KindCurrentRound  Kind = "current_round"
	KindElapsed       Kind = "elapsed"
	KindTotal         Kind = "total"
	KindSpans         Kind = "spans"
	KindSystemTime    Kind = "system_time"
	KindText          Kind = "text"

	// KindChildrenStatus is an internal bookkeeping kind: it never appears
	// in a parsed Statement, only in a block's own children:status memory,
	// so it defaults to private visibility (spec.md §3's "unknown
	// fragment:* tags default to private" plus this carrying no
	// fragment:* tag at all).
	KindChildrenStatus Kind = "children_status"
)

// Origin is the provenance of a Fragment. Origin defines a total order for
// precedence resolution: user > runtime > compiler > parser.
type Origin int

const (
	OriginParser Origin = iota
	OriginCompiler
	OriginRuntime
	OriginUser
)

// Rank returns the precedence rank used by resolution: higher wins.
func (o Origin) Rank() int { return int(o) }

func (o Origin) String() string {
	switch o {
	case OriginParser:
		return "parser"
	case OriginCompiler:
		return "compiler"
	case OriginRuntime:
		return "runtime"
	case OriginUser:
		return "user"
	default:
		return "unknown"
	}
}

// TimerDirection is the counting direction of a timer fragment/memory.
type TimerDirection string

const (
	DirectionUp   TimerDirection = "up"
	DirectionDown TimerDirection = "down"
)

// CurrentRoundValue is the payload of a KindCurrentRound fragment.
type CurrentRoundValue struct {
	Current int
	Total   int // 0 means unbounded (AMRAP-style)
}

// TimerValue is the payload of a KindTimer fragment.
type TimerValue struct {
	DurationMs int64
	Direction  TimerDirection
}

// ResistanceValue is the payload of a KindResistance fragment.
type ResistanceValue struct {
	Value float64
	Unit  string
}

// DistanceValue is the payload of a KindDistance fragment.
type DistanceValue struct {
	Value float64
	Unit  string
}

// Fragment is a tagged value carried by statements and memory locations.
// Go has no native tagged union, so Fragment pairs a closed Kind with a
// single typed Value any; typed constructors and accessors below keep call
// sites from doing their own type assertions.
type Fragment struct {
	Kind   Kind
	Origin Origin
	Value  any
}

func NewFragment(kind Kind, origin Origin, value any) Fragment {
	return Fragment{Kind: kind, Origin: origin, Value: value}
}

func NewTimerFragment(origin Origin, durationMs int64, dir TimerDirection) Fragment {
	return NewFragment(KindTimer, origin, TimerValue{DurationMs: durationMs, Direction: dir})
}

func NewRoundsFragment(origin Origin, n int) Fragment {
	return NewFragment(KindRounds, origin, n)
}

func NewRepFragment(origin Origin, n int) Fragment {
	return NewFragment(KindRep, origin, n)
}

func NewEffortFragment(origin Origin, label string) Fragment {
	return NewFragment(KindEffort, origin, label)
}

func NewLabelFragment(origin Origin, text string) Fragment {
	return NewFragment(KindLabel, origin, text)
}

func NewActionFragment(origin Origin, name string) Fragment {
	return NewFragment(KindAction, origin, name)
}

// Int returns the fragment's value as an int (Rounds, Rep), or 0 if not an int.
func (f Fragment) Int() int {
	if v, ok := f.Value.(int); ok {
		return v
	}
	return 0
}

// Text returns the fragment's value as a string (Effort, Label, Action, Text).
func (f Fragment) Text() string {
	if v, ok := f.Value.(string); ok {
		return v
	}
	return ""
}

// Timer returns the fragment's TimerValue, ok=false if not a timer fragment.
func (f Fragment) Timer() (TimerValue, bool) {
	v, ok := f.Value.(TimerValue)
	return v, ok
}

// Resistance returns the fragment's ResistanceValue, ok=false otherwise.
func (f Fragment) Resistance() (ResistanceValue, bool) {
	v, ok := f.Value.(ResistanceValue)
	return v, ok
}

// Distance returns the fragment's DistanceValue, ok=false otherwise.
func (f Fragment) Distance() (DistanceValue, bool) {
	v, ok := f.Value.(DistanceValue)
	return v, ok
}

// CurrentRound returns the fragment's CurrentRoundValue, ok=false otherwise.
func (f Fragment) CurrentRound() (CurrentRoundValue, bool) {
	v, ok := f.Value.(CurrentRoundValue)
	return v, ok
}

// Int64 returns the fragment's value as an int64 (Elapsed, Total), or 0 if
// not an int64.
func (f Fragment) Int64() int64 {
	if v, ok := f.Value.(int64); ok {
		return v
	}
	return 0
}

// ChildrenStatusValue is the payload of a KindChildrenStatus fragment —
// the children:status memory location's bookkeeping (spec.md §4.7).
type ChildrenStatusValue struct {
	ChildIndex    int
	TotalChildren int
	AllExecuted   bool
	AllCompleted  bool
}

// NewSpansFragment wraps a timer's recorded TimeSpan history for
// result/history reporting (spec.md §3's TimerState.spans).
func NewSpansFragment(origin Origin, spans []TimeSpan) Fragment {
	return NewFragment(KindSpans, origin, append([]TimeSpan(nil), spans...))
}

// Spans returns the fragment's []TimeSpan, ok=false if not a spans fragment.
func (f Fragment) Spans() ([]TimeSpan, bool) {
	v, ok := f.Value.([]TimeSpan)
	return v, ok
}

// NewChildrenStatusFragment wraps a ChildSelectionBehavior's bookkeeping.
func NewChildrenStatusFragment(origin Origin, v ChildrenStatusValue) Fragment {
	return NewFragment(KindChildrenStatus, origin, v)
}

// ChildrenStatus returns the fragment's ChildrenStatusValue, ok=false
// otherwise.
func (f Fragment) ChildrenStatus() (ChildrenStatusValue, bool) {
	v, ok := f.Value.(ChildrenStatusValue)
	return v, ok
}
