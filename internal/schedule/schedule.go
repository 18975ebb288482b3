// Package schedule provides cancellable scheduled tasks: one-shot delayed
// callbacks and recurring intervals, each owned through a Task handle.
package schedule

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel stops the task. It reports whether the call stopped a task that
	// was still pending; cancelling a fired one-shot task or an already
	// cancelled task returns false. A callback that is already running is not
	// interrupted.
	Cancel() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Task
	// Every runs f every d until the returned task is cancelled. d must be positive.
	Every(d time.Duration, f func()) Task
}

// System returns a Clock backed by runtime timers. Callbacks run on their
// own goroutines, so callers must synchronize any state they touch.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Task {
	return timerTask{t: time.AfterFunc(d, f)}
}

func (systemClock) Every(d time.Duration, f func()) Task {
	task := &tickerTask{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go task.run(f)
	return task
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(f func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// A tick can race with Cancel; prefer the cancellation.
			select {
			case <-t.done:
				return
			default:
			}
			f()
		}
	}
}

func (t *tickerTask) Cancel() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
