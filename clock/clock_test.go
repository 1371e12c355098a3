package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMockScheduleFiresOnce(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	fired := 0
	m.Schedule(100*time.Millisecond, func() { fired++ })

	m.Advance(50 * time.Millisecond)
	require.Equal(t, 0, fired)

	m.Advance(60 * time.Millisecond)
	require.Equal(t, 1, fired)

	m.Advance(time.Second)
	require.Equal(t, 1, fired, "one-shot must not refire")
}

func TestMockScheduleCancel(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	fired := 0
	cancel := m.Schedule(100*time.Millisecond, func() { fired++ })
	cancel()
	cancel() // must be safe to call twice

	m.Advance(time.Second)
	require.Equal(t, 0, fired)
}

func TestMockEveryFiresRepeatedly(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	ticks := 0
	m.Every(100*time.Millisecond, func() { ticks++ })

	m.Advance(350 * time.Millisecond)
	require.Equal(t, 3, ticks)

	m.Advance(200 * time.Millisecond)
	require.Equal(t, 5, ticks)
}

func TestMockEveryCancelStopsFiring(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	ticks := 0
	cancel := m.Every(100*time.Millisecond, func() { ticks++ })

	m.Advance(250 * time.Millisecond)
	require.Equal(t, 2, ticks)

	cancel()
	m.Advance(time.Second)
	require.Equal(t, 2, ticks)
}

func TestMockNowAdvances(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewMock(start)
	m.Advance(5 * time.Second)
	require.Equal(t, start.Add(5*time.Second), m.Now())
}
