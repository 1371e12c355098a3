package core

import "github.com/comalice/ironloop/internal/primitives"

// Tag namespaces a MemoryLocation. The set of well-known tags is frozen
// here per spec.md §3/§9 (Open Questions): tags are open strings with a
// known fixed subset, resolved at build time rather than at runtime.
type Tag string

const (
	TagTimer          Tag = "timer"
	TagRound          Tag = "round"
	TagDisplay        Tag = "display"
	TagButtons        Tag = "buttons"
	TagChildrenStatus Tag = "children:status"
	TagHandlerPrefix  Tag = "handler:" // handler:* — concatenate a suffix

	TagFragmentDisplay   Tag = "fragment:display"
	TagFragmentResult    Tag = "fragment:result"
	TagFragmentPromote   Tag = "fragment:promote"
	TagFragmentRepTarget Tag = "fragment:rep-target"
	TagFragmentTracked   Tag = "fragment:tracked"
	TagFragmentLabel     Tag = "fragment:label"
	TagFragmentNext      Tag = "fragment:next"
)

// Visibility is the fixed tier every tag maps to. Unknown fragment:* tags
// default to private (spec.md §3).
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPromote
	VisibilityResult
	VisibilityDisplay
)

func (v Visibility) isPublic() bool { return v != VisibilityPrivate }

// visibilityOf resolves the fixed visibility tier for a tag.
func visibilityOf(tag Tag) Visibility {
	switch tag {
	case TagFragmentDisplay, TagDisplay, TagButtons:
		return VisibilityDisplay
	case TagFragmentResult:
		return VisibilityResult
	case TagFragmentPromote, TagFragmentRepTarget:
		return VisibilityPromote
	default:
		return VisibilityPrivate
	}
}

// Listener is notified synchronously after a MemoryLocation's value
// changes, with (newFragments, oldFragments). On release it is invoked
// once with (nil, lastValue).
type Listener func(newFragments, oldFragments []primitives.Fragment)

// Unsubscribe removes a listener. Always safe to call more than once.
type Unsubscribe func()

// MemoryLocation is a tagged, typed, subscribable slot of fragments owned
// by exactly one block. Mutable only through the owning block's behavior
// context (spec.md §3, §4.2).
//
// Grounded in the teacher's HistoryManager
// (internal/core/historymanager.go) for the "derive state, notify
// dependents on change" shape, generalized from SCXML history restoration
// to an arbitrary tagged fragment slot.
type MemoryLocation struct {
	tag       Tag
	fragments []primitives.Fragment
	listeners []*listenerSlot
	released  bool
}

type listenerSlot struct {
	fn     Listener
	active bool
}

// NewMemoryLocation creates a location with the given tag and initial
// fragments.
func NewMemoryLocation(tag Tag, fragments []primitives.Fragment) *MemoryLocation {
	return &MemoryLocation{tag: tag, fragments: append([]primitives.Fragment(nil), fragments...)}
}

func (m *MemoryLocation) Tag() Tag                        { return m.tag }
func (m *MemoryLocation) Visibility() Visibility          { return visibilityOf(m.tag) }
func (m *MemoryLocation) Fragments() []primitives.Fragment { return append([]primitives.Fragment(nil), m.fragments...) }
func (m *MemoryLocation) Released() bool                  { return m.released }

// Update replaces the location's fragments, notifying subscribers with
// (new, old) in registration order. A silent no-op if the location has
// been released: nothing is returned or logged.
func (m *MemoryLocation) Update(newFragments []primitives.Fragment) {
	if m.released {
		return
	}
	old := m.fragments
	m.fragments = append([]primitives.Fragment(nil), newFragments...)
	m.notify(m.fragments, old)
}

// Subscribe registers a listener, returning an idempotent Unsubscribe.
func (m *MemoryLocation) Subscribe(fn Listener) Unsubscribe {
	slot := &listenerSlot{fn: fn, active: true}
	m.listeners = append(m.listeners, slot)
	return func() { slot.active = false }
}

func (m *MemoryLocation) notify(newFrags, oldFrags []primitives.Fragment) {
	for _, slot := range m.listeners {
		if slot.active {
			slot.fn(newFrags, oldFrags)
		}
	}
}

// Release marks the location released and notifies every still-active
// listener exactly once with (nil, lastValue).
func (m *MemoryLocation) Release() {
	if m.released {
		return
	}
	m.released = true
	last := m.fragments
	for _, slot := range m.listeners {
		if slot.active {
			slot.active = false
			slot.fn(nil, last)
		}
	}
}

// MemoryStore is the list of locations a single block owns.
type MemoryStore struct {
	locations []*MemoryLocation
}

// Push appends a new location.
func (s *MemoryStore) Push(loc *MemoryLocation) *MemoryLocation {
	s.locations = append(s.locations, loc)
	return loc
}

// GetByTag returns every location with the given tag, in push order.
func (s *MemoryStore) GetByTag(tag Tag) []*MemoryLocation {
	var out []*MemoryLocation
	for _, l := range s.locations {
		if l.tag == tag {
			out = append(out, l)
		}
	}
	return out
}

// AllByVisibility returns every location at the given visibility tier.
func (s *MemoryStore) AllByVisibility(v Visibility) []*MemoryLocation {
	var out []*MemoryLocation
	for _, l := range s.locations {
		if visibilityOf(l.tag) == v {
			out = append(out, l)
		}
	}
	return out
}

// All returns every location this store owns.
func (s *MemoryStore) All() []*MemoryLocation {
	return append([]*MemoryLocation(nil), s.locations...)
}

// ReleaseAll releases every location the store owns (block dispose).
func (s *MemoryStore) ReleaseAll() {
	for _, l := range s.locations {
		l.Release()
	}
}
