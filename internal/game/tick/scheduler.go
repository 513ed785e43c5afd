// Package tick schedules the repeating autonomous work of a game session:
// worker chops, the auto-clicker and achievement polling. The scheduler is
// advanced explicitly with a timestamp so real and simulated time behave the
// same way.
package tick

import (
	"sort"
	"time"
)

// DefaultMaxCatchUp bounds how many missed intervals of one entry are replayed
// by a single Advance call.
const DefaultMaxCatchUp = 1000

// Func is invoked with the scheduled fire time, which may lag the time passed
// to Advance when missed intervals are being caught up.
type Func func(at time.Time)

// Entry describes one scheduled repeating task.
type Entry struct {
	ID       string
	Interval time.Duration
	Next     time.Time
}

type entry struct {
	Entry
	fn Func
}

// Scheduler tracks repeating tasks keyed by id.
//
// Invariant: at most one task is registered per id.
// Not safe for concurrent use; callers serialize access.
type Scheduler struct {
	clock      Clock
	entries    map[string]*entry
	maxCatchUp int
}

// NewScheduler returns an empty Scheduler reading time from clock.
//
// Precondition: clock must not be nil.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		panic("tick.NewScheduler: clock must not be nil")
	}
	return &Scheduler{
		clock:      clock,
		entries:    make(map[string]*entry),
		maxCatchUp: DefaultMaxCatchUp,
	}
}

// SetMaxCatchUp changes the per-entry replay bound of Advance.
//
// Precondition: n >= 1.
func (s *Scheduler) SetMaxCatchUp(n int) {
	if n < 1 {
		panic("tick.Scheduler.SetMaxCatchUp: n must be >= 1")
	}
	s.maxCatchUp = n
}

// Schedule registers fn to run every interval under id, replacing any task
// already registered under id. The first run is due one interval from now.
//
// Precondition: interval > 0 and fn must not be nil.
func (s *Scheduler) Schedule(id string, interval time.Duration, fn Func) {
	if interval <= 0 {
		panic("tick.Scheduler.Schedule: interval must be > 0")
	}
	if fn == nil {
		panic("tick.Scheduler.Schedule: fn must not be nil")
	}
	s.entries[id] = &entry{
		Entry: Entry{ID: id, Interval: interval, Next: s.clock.Now().Add(interval)},
		fn:    fn,
	}
}

// Cancel removes the task registered under id. Unknown ids are ignored.
func (s *Scheduler) Cancel(id string) {
	delete(s.entries, id)
}

// CancelFunc removes every task whose id satisfies match.
func (s *Scheduler) CancelFunc(match func(id string) bool) {
	for id := range s.entries {
		if match(id) {
			delete(s.entries, id)
		}
	}
}

// CancelAll removes every task.
func (s *Scheduler) CancelAll() {
	clear(s.entries)
}

// Scheduled reports whether a task is registered under id.
func (s *Scheduler) Scheduled(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Entries returns the registered tasks sorted by id.
func (s *Scheduler) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Advance runs every task due at or before now, in fire-time order with ties
// broken by id. A task that missed several intervals runs once per missed
// interval, up to the catch-up bound; beyond it the remaining intervals are
// skipped. Tasks may schedule or cancel tasks while running.
//
// Postcondition: every remaining entry has Next > now. Returns the number of runs.
func (s *Scheduler) Advance(now time.Time) int {
	runs := make(map[string]int)
	total := 0
	for {
		e := s.earliestDue(now)
		if e == nil {
			return total
		}
		if runs[e.ID] >= s.maxCatchUp {
			missed := now.Sub(e.Next)/e.Interval + 1
			e.Next = e.Next.Add(missed * e.Interval)
			continue
		}
		at := e.Next
		e.Next = at.Add(e.Interval)
		runs[e.ID]++
		total++
		e.fn(at)
	}
}

func (s *Scheduler) earliestDue(now time.Time) *entry {
	var best *entry
	for _, e := range s.entries {
		if e.Next.After(now) {
			continue
		}
		if best == nil || e.Next.Before(best.Next) || (e.Next.Equal(best.Next) && e.ID < best.ID) {
			best = e
		}
	}
	return best
}
