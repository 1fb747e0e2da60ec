package schedule

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Nothing fires until
// the owner calls Next or AdvanceBy, which makes it suitable for tests and
// for replaying a lesson without waiting.
type Manual struct {
	now     time.Duration
	order   uint64
	pending []manualTask
}

type manualTask struct {
	timer Timer
	due   time.Duration
	order uint64
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) Schedule(t Timer) {
	m.order++
	m.pending = append(m.pending, manualTask{timer: t, due: m.now + t.After, order: m.order})
}

func (m *Manual) Cancel(t Timer) {
	key := t.Key()
	kept := m.pending[:0]
	for _, p := range m.pending {
		if p.timer.Key() != key {
			kept = append(kept, p)
		}
	}
	m.pending = kept
}

// Pending returns the number of scheduled tasks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Next pops the earliest due task and moves the clock to its due time.
// Ties fire in scheduling order.
func (m *Manual) Next() (Timer, bool) {
	if len(m.pending) == 0 {
		return Timer{}, false
	}
	m.sort()
	p := m.pending[0]
	m.pending = m.pending[1:]
	if p.due > m.now {
		m.now = p.due
	}
	return p.timer, true
}

// AdvanceBy moves the clock forward by d and returns every task that came
// due, in firing order.
func (m *Manual) AdvanceBy(d time.Duration) []Timer {
	target := m.now + d
	var fired []Timer
	for {
		m.sort()
		if len(m.pending) == 0 || m.pending[0].due > target {
			break
		}
		t, _ := m.Next()
		fired = append(fired, t)
	}
	m.now = target
	return fired
}

func (m *Manual) sort() {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].order < m.pending[j].order
	})
}
