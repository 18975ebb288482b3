package schedule

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called. Due
// callbacks run synchronously on the goroutine calling Advance, in deadline
// order (ties broken by scheduling order).
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks map[uint64]*manualTask
}

type manualTask struct {
	m      *Manual
	id     uint64
	at     time.Time
	period time.Duration
	fn     func()
}

// NewManual returns a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:   start,
		tasks: make(map[uint64]*manualTask),
	}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once d after the current time.
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	return m.schedule(d, 0, f)
}

// Every schedules f to run every d, starting d from now.
func (m *Manual) Every(d time.Duration, f func()) Task {
	if d <= 0 {
		panic("schedule: non-positive interval for Every")
	}
	return m.schedule(d, d, f)
}

func (m *Manual) schedule(d, period time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{
		m:      m,
		id:     m.seq,
		at:     m.now.Add(d),
		period: period,
		fn:     f,
	}
	m.tasks[t.id] = t
	return t
}

// Advance moves the clock forward by d, running every callback that comes
// due on the way. Callbacks may schedule or cancel tasks; newly scheduled
// tasks that fall inside the window also run.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		if next.period > 0 {
			next.at = next.at.Add(next.period)
		} else {
			delete(m.tasks, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of scheduled tasks that have neither fired (for
// one-shot tasks) nor been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDue(target time.Time) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if _, ok := t.m.tasks[t.id]; !ok {
		return false
	}
	delete(t.m.tasks, t.id)
	return true
}
