package tick_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualClock_AdvanceAndSet(t *testing.T) {
	c := tick.NewManualClock(epoch)
	assert.Equal(t, epoch, c.Now())
	assert.Equal(t, epoch.Add(time.Second), c.Advance(time.Second))
	c.Set(epoch)
	assert.Equal(t, epoch, c.Now())
	assert.Panics(t, func() { c.Advance(-time.Second) })
}

func TestScheduler_FiresAfterOneInterval(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	var fired []time.Time
	s.Schedule("worker:ptitLu", 1200*time.Millisecond, func(at time.Time) { fired = append(fired, at) })

	assert.Zero(t, s.Advance(clock.Advance(time.Second)))
	assert.Equal(t, 1, s.Advance(clock.Advance(200*time.Millisecond)))
	require.Len(t, fired, 1)
	assert.Equal(t, epoch.Add(1200*time.Millisecond), fired[0])
}

func TestScheduler_CatchUpReplaysMissedIntervals(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	count := 0
	s.Schedule("autoClicker", time.Second, func(time.Time) { count++ })
	assert.Equal(t, 10, s.Advance(clock.Advance(10*time.Second+500*time.Millisecond)))
	assert.Equal(t, 10, count)
	assert.Equal(t, epoch.Add(11*time.Second), s.Entries()[0].Next)
}

func TestScheduler_CatchUpIsBounded(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	s.SetMaxCatchUp(5)
	count := 0
	s.Schedule("a", time.Second, func(time.Time) { count++ })
	s.Advance(clock.Advance(time.Hour))
	assert.Equal(t, 5, count)
	next := s.Entries()[0].Next
	assert.True(t, next.After(clock.Now()))
	assert.LessOrEqual(t, next.Sub(clock.Now()), time.Second)
}

func TestScheduler_ScheduleReplaces(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	old, replacement := 0, 0
	s.Schedule("worker:vico", time.Second, func(time.Time) { old++ })
	clock.Advance(500 * time.Millisecond)
	s.Schedule("worker:vico", time.Second, func(time.Time) { replacement++ })
	require.Len(t, s.Entries(), 1)

	s.Advance(clock.Advance(600 * time.Millisecond))
	assert.Zero(t, old)
	assert.Zero(t, replacement, "replacement is due one interval after it was scheduled")
	s.Advance(clock.Advance(400 * time.Millisecond))
	assert.Equal(t, 1, replacement)
}

func TestScheduler_ChronologicalOrderWithIDTieBreak(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	var order []string
	record := func(id string) tick.Func {
		return func(at time.Time) { order = append(order, fmt.Sprintf("%s@%d", id, at.Sub(epoch).Milliseconds())) }
	}
	s.Schedule("b", 300*time.Millisecond, record("b"))
	s.Schedule("a", 300*time.Millisecond, record("a"))
	s.Schedule("c", 400*time.Millisecond, record("c"))
	s.Advance(clock.Advance(700 * time.Millisecond))
	assert.Equal(t, []string{"a@300", "b@300", "c@400", "a@600", "b@600"}, order)
}

func TestScheduler_CancelDuringAdvance(t *testing.T) {
	clock := tick.NewManualClock(epoch)
	s := tick.NewScheduler(clock)
	bRuns := 0
	s.Schedule("a", time.Second, func(time.Time) { s.Cancel("b") })
	s.Schedule("b", 2*time.Second, func(time.Time) { bRuns++ })
	s.Advance(clock.Advance(5 * time.Second))
	assert.Zero(t, bRuns)
	assert.False(t, s.Scheduled("b"))
	assert.True(t, s.Scheduled("a"))
}

func TestScheduler_CancelFuncAndCancelAll(t *testing.T) {
	s := tick.NewScheduler(tick.NewManualClock(epoch))
	noop := func(time.Time) {}
	s.Schedule("worker:ptitLu", time.Second, noop)
	s.Schedule("worker:vico", time.Second, noop)
	s.Schedule("achievements", time.Second, noop)
	s.CancelFunc(func(id string) bool { return id != "achievements" })
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "achievements", entries[0].ID)
	s.CancelAll()
	assert.Empty(t, s.Entries())
}

func TestScheduler_InvalidArgumentsPanic(t *testing.T) {
	s := tick.NewScheduler(tick.SystemClock{})
	assert.Panics(t, func() { s.Schedule("x", 0, func(time.Time) {}) })
	assert.Panics(t, func() { s.Schedule("x", time.Second, nil) })
	assert.Panics(t, func() { tick.NewScheduler(nil) })
}

// TestScheduler_RunCountMatchesElapsedIntervals checks that, within the
// catch-up bound, an entry fires exactly floor(elapsed/interval) times no
// matter how the elapsed time is split across Advance calls.
func TestScheduler_RunCountMatchesElapsedIntervals(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		clock := tick.NewManualClock(epoch)
		s := tick.NewScheduler(clock)
		interval := time.Duration(rapid.IntRange(5, 2000).Draw(rt, "intervalMs")) * time.Millisecond
		count := 0
		s.Schedule("x", interval, func(time.Time) { count++ })
		steps := rapid.SliceOfN(rapid.IntRange(0, 3000), 1, 40).Draw(rt, "stepsMs")
		for _, ms := range steps {
			s.Advance(clock.Advance(time.Duration(ms) * time.Millisecond))
		}
		elapsed := clock.Now().Sub(epoch)
		assert.Equal(rt, int(elapsed/interval), count)
	})
}
