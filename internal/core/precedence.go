package core

import "github.com/comalice/ironloop/internal/primitives"

// resolvePrecedence implements the fragment:display algorithm (spec.md
// §4.2): for each fragment Kind present across the plan fragments plus any
// fragment:display overrides, keep only the fragment(s) at the highest
// Origin rank present; if that highest rank is shared by more than one
// fragment (e.g. a 21-15-9 rep scheme, three parser-origin Rep fragments),
// keep all of them.
func resolvePrecedence(plan [][]primitives.Fragment, overrides []primitives.Fragment) []primitives.Fragment {
	byKind := map[primitives.Kind][]primitives.Fragment{}
	order := []primitives.Kind{}

	add := func(f primitives.Fragment) {
		if _, seen := byKind[f.Kind]; !seen {
			order = append(order, f.Kind)
		}
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}

	for _, group := range plan {
		for _, f := range group {
			add(f)
		}
	}
	for _, f := range overrides {
		add(f)
	}

	var resolved []primitives.Fragment
	for _, kind := range order {
		frags := byKind[kind]
		best := bestRank(frags)
		for _, f := range frags {
			if f.Origin.Rank() == best {
				resolved = append(resolved, f)
			}
		}
	}
	return resolved
}

func bestRank(frags []primitives.Fragment) int {
	best := -1
	for _, f := range frags {
		if r := f.Origin.Rank(); r > best {
			best = r
		}
	}
	return best
}
