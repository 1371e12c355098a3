package core

import "github.com/comalice/ironloop/internal/primitives"

// MemoryView is the convenience shim every behavior and external consumer
// uses instead of touching MemoryLocation fragments directly: `.Value()`
// plus `.Subscribe()`. Spec.md §4.2/§9 resolves the source's duck-typed
// "memory shim" into this single concrete type instead of an ad-hoc
// per-tag object, with FragmentView below standing in for the
// fragment:display compound case.
type MemoryView struct {
	loc *MemoryLocation
}

// NewMemoryView wraps a location. loc may be nil (no location of that tag
// exists yet); Value then reports ok=false.
func NewMemoryView(loc *MemoryLocation) *MemoryView {
	return &MemoryView{loc: loc}
}

// Value returns the first fragment's typed value and whether a location
// backs this view at all.
func (v *MemoryView) Value() (primitives.Fragment, bool) {
	if v.loc == nil {
		return primitives.Fragment{}, false
	}
	frags := v.loc.Fragments()
	if len(frags) == 0 {
		return primitives.Fragment{}, false
	}
	return frags[0], true
}

// Subscribe forwards to the underlying location, or is a no-op returning a
// harmless Unsubscribe if there is no location.
func (v *MemoryView) Subscribe(fn Listener) Unsubscribe {
	if v.loc == nil {
		return func() {}
	}
	return v.loc.Subscribe(fn)
}

// FragmentView is the precedence-resolved view backing fragment:display
// (spec.md §4.2). It recomputes resolved on every underlying change and
// re-notifies its own subscribers — derive-on-change, mirroring the
// teacher's HistoryManager.Restore pattern
// (internal/core/historymanager.go) of deriving a view from recorded state
// rather than caching a value that can drift.
type FragmentView struct {
	plan      [][]primitives.Fragment
	overrides *MemoryLocation
	resolved  []primitives.Fragment
	listeners []*listenerSlot
}

// NewFragmentView builds a FragmentView over the block's plan fragments
// and its fragment:display override location (may be nil if none exists
// yet).
func NewFragmentView(plan [][]primitives.Fragment, overrides *MemoryLocation) *FragmentView {
	v := &FragmentView{plan: plan, overrides: overrides}
	v.recompute()
	if overrides != nil {
		overrides.Subscribe(func(_, _ []primitives.Fragment) { v.onUnderlyingChange() })
	}
	return v
}

func (v *FragmentView) recompute() {
	var overrideFrags []primitives.Fragment
	if v.overrides != nil {
		overrideFrags = v.overrides.Fragments()
	}
	v.resolved = resolvePrecedence(v.plan, overrideFrags)
}

func (v *FragmentView) onUnderlyingChange() {
	old := v.resolved
	v.recompute()
	for _, slot := range v.listeners {
		if slot.active {
			slot.fn(v.resolved, old)
		}
	}
}

// Resolved returns the current precedence-resolved fragment list.
func (v *FragmentView) Resolved() []primitives.Fragment {
	return append([]primitives.Fragment(nil), v.resolved...)
}

// GetFragment returns the single best fragment of the given kind, if any.
// When more than one fragment of that kind survives resolution (a 21-15-9
// rep scheme), GetFragment returns the first; use GetAllByType for the
// full precedence-ordered list.
func (v *FragmentView) GetFragment(kind primitives.Kind) (primitives.Fragment, bool) {
	for _, f := range v.resolved {
		if f.Kind == kind {
			return f, true
		}
	}
	return primitives.Fragment{}, false
}

// GetAllByType returns every resolved fragment of the given kind, in
// precedence order.
func (v *FragmentView) GetAllByType(kind primitives.Kind) []primitives.Fragment {
	var out []primitives.Fragment
	for _, f := range v.resolved {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether the resolved view carries any fragment of the given
// kind.
func (v *FragmentView) Has(kind primitives.Kind) bool {
	_, ok := v.GetFragment(kind)
	return ok
}

// RawFragments returns every plan fragment, unresolved, flattened.
func (v *FragmentView) RawFragments() []primitives.Fragment {
	var out []primitives.Fragment
	for _, group := range v.plan {
		out = append(out, group...)
	}
	return out
}

// Subscribe registers a listener notified whenever the resolved view
// changes because the underlying fragment:display location changed.
func (v *FragmentView) Subscribe(fn func(resolved, old []primitives.Fragment)) Unsubscribe {
	slot := &listenerSlot{active: true}
	slot.fn = func(n, o []primitives.Fragment) { fn(n, o) }
	v.listeners = append(v.listeners, slot)
	return func() { slot.active = false }
}
