// Package schedule runs deferred tasks and coalesces bursts of them.
package schedule

import (
	"sync"
	"time"
)

// Handle refers to a scheduled task.
type Handle interface {
	// Cancel prevents the task from running. It reports false if the task
	// already ran or was cancelled before.
	Cancel() bool
}

// Scheduler runs a task once after a delay.
type Scheduler interface {
	After(delay time.Duration, task func()) Handle
}

// Timers schedules tasks on the runtime timer. Tasks run on their own goroutine.
type Timers struct{}

var _ Scheduler = Timers{}

func (Timers) After(delay time.Duration, task func()) Handle {
	return timerHandle{t: time.AfterFunc(delay, task)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.t.Stop()
}

// Debouncer delays a task until no new trigger arrived for the configured delay.
// Only the most recently triggered task runs.
type Debouncer struct {
	sched Scheduler
	delay time.Duration

	mu     sync.Mutex
	gen    uint64
	task   func()
	handle Handle
}

func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{sched: sched, delay: delay}
}

// Trigger replaces any pending task with task and restarts the delay.
func (d *Debouncer) Trigger(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		d.handle.Cancel()
	}

	d.gen++
	gen := d.gen

	d.task = task
	d.handle = d.sched.After(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending task now, if there is one, and reports whether it did.
func (d *Debouncer) Flush() bool {
	task := d.take()
	if task == nil {
		return false
	}

	task()

	return true
}

// Stop drops the pending task without running it and reports whether there was one.
func (d *Debouncer) Stop() bool {
	return d.take() != nil
}

// Pending reports whether a task is waiting for its delay to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.task != nil
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		d.handle.Cancel()
	}

	task := d.task
	d.gen++
	d.task = nil
	d.handle = nil

	return task
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()

	// A timer that lost the race with Trigger or Flush must not run.
	if gen != d.gen || d.task == nil {
		d.mu.Unlock()
		return
	}

	task := d.task
	d.task = nil
	d.handle = nil
	d.mu.Unlock()

	task()
}
