package core

import (
	"testing"

	"github.com/comalice/ironloop/internal/primitives"
	"github.com/stretchr/testify/assert"
)

func TestResolvePrecedenceKeepsHighestOriginPerKind(t *testing.T) {
	plan := [][]primitives.Fragment{
		{
			primitives.NewTimerFragment(primitives.OriginParser, 60000, primitives.DirectionDown),
			primitives.NewLabelFragment(primitives.OriginParser, "row"),
		},
	}
	overrides := []primitives.Fragment{
		primitives.NewTimerFragment(primitives.OriginUser, 45000, primitives.DirectionDown),
	}

	resolved := resolvePrecedence(plan, overrides)

	var timer, label bool
	for _, f := range resolved {
		if f.Kind == primitives.KindTimer {
			timer = true
			tv, ok := f.Timer()
			assert.True(t, ok)
			assert.Equal(t, int64(45000), tv.DurationMs)
			assert.Equal(t, primitives.OriginUser, f.Origin)
		}
		if f.Kind == primitives.KindLabel {
			label = true
		}
	}
	assert.True(t, timer)
	assert.True(t, label)
}

func TestResolvePrecedenceKeepsAllFragmentsTiedAtTopRank(t *testing.T) {
	// A 21-15-9 rep scheme: three parser-origin Rep fragments, none
	// overridden, all must survive resolution.
	plan := [][]primitives.Fragment{
		{
			primitives.NewRepFragment(primitives.OriginParser, 21),
			primitives.NewRepFragment(primitives.OriginParser, 15),
			primitives.NewRepFragment(primitives.OriginParser, 9),
		},
	}

	resolved := resolvePrecedence(plan, nil)

	var reps []int
	for _, f := range resolved {
		if f.Kind == primitives.KindRep {
			reps = append(reps, f.Int())
		}
	}
	assert.Equal(t, []int{21, 15, 9}, reps)
}

func TestResolvePrecedencePreservesFirstSeenKindOrder(t *testing.T) {
	plan := [][]primitives.Fragment{
		{primitives.NewLabelFragment(primitives.OriginParser, "a")},
		{primitives.NewTimerFragment(primitives.OriginParser, 1000, primitives.DirectionUp)},
	}

	resolved := resolvePrecedence(plan, nil)

	assert.Equal(t, primitives.KindLabel, resolved[0].Kind)
	assert.Equal(t, primitives.KindTimer, resolved[1].Kind)
}
