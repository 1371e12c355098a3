package primitives

// Statement is a parsed tree node consumed by the JIT. It is immutable
// during execution: the parser/compiler builds it once, and the core only
// ever reads from it. Grounded in the teacher's StateConfig tree
// (internal/primitives/stateconfig.go in the source project), rewritten
// here as the flat fragment-carrying node the spec's input contract
// describes instead of a named hierarchical state.
type Statement struct {
	ID        string
	Fragments []Fragment
	Children  []*Statement
}

// FragmentsOfKind returns every fragment of the given kind on this
// statement, in declaration order.
func (s *Statement) FragmentsOfKind(kind Kind) []Fragment {
	var out []Fragment
	for _, f := range s.Fragments {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// HasKind reports whether the statement carries at least one fragment of
// the given kind.
func (s *Statement) HasKind(kind Kind) bool {
	for _, f := range s.Fragments {
		if f.Kind == kind {
			return true
		}
	}
	return false
}
