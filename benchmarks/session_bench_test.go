// Package benchmarks measures the new engine's hot loop: pushing and
// popping blocks through the action processor.
//
// Grounded in the teacher's transition_bench_test.go (since rewritten),
// which benchmarked SCXML transition throughput the same way — drive N
// events through a compiled machine and report ns/op. Adapted here to
// drive N rounds of a workout script's rounds/child-list/effort blocks
// through a Session instead of N state transitions.
package benchmarks

import (
	"testing"
	"time"

	"github.com/comalice/ironloop"
	"github.com/comalice/ironloop/clock"
)

func flatScript(n int) *ironloop.Statement {
	labels := make([]*ironloop.StatementBuilder, n)
	for i := 0; i < n; i++ {
		labels[i] = ironloop.Label("step", "step")
	}
	return ironloop.NewStatement("root").Children(labels...).Build()
}

func roundsScript(rounds int) *ironloop.Statement {
	return ironloop.Rounds("amrap", rounds, ironloop.Effort("exercise", "Exercise")).Build()
}

func BenchmarkSessionFlatChildList100(b *testing.B) {
	script := flatScript(100)
	for i := 0; i < b.N; i++ {
		session, err := ironloop.NewSession(script, ironloop.WithClock(clock.NewMock(time.Unix(0, 0))))
		if err != nil {
			b.Fatal(err)
		}
		if err := session.Start(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSessionRoundsSendNext(b *testing.B) {
	script := roundsScript(b.N)
	session, err := ironloop.NewSession(script, ironloop.WithClock(clock.NewMock(time.Unix(0, 0))))
	if err != nil {
		b.Fatal(err)
	}
	if err := session.Start(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := session.Send(ironloop.EventNext, nil); err != nil {
			b.Fatal(err)
		}
	}
}
