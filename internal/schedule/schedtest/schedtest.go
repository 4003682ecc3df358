// Package schedtest provides a deterministic schedule.Scheduler driven by a virtual clock.
package schedtest

import (
	"sync"
	"time"

	"github.com/MrJamesThe3rd/invoi/internal/schedule"
)

// Scheduler runs tasks only when the test advances its clock. Tasks run on the
// goroutine that calls Advance, in due order; ties run in scheduling order.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*task
}

var _ schedule.Scheduler = (*Scheduler)(nil)

func New() *Scheduler {
	return &Scheduler{}
}

type task struct {
	s    *Scheduler
	at   time.Duration
	seq  int
	fn   func()
	done bool
}

func (s *Scheduler) After(delay time.Duration, fn func()) schedule.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &task{s: s, at: s.now + max(delay, 0), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)

	return t
}

func (t *task) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.done {
		return false
	}

	t.done = true
	t.s.remove(t)

	return true
}

// Advance moves the clock forward by d, running every task that falls due.
// Tasks scheduled while advancing run too if they fall due before the new time.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()

		next := s.next(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()

			return
		}

		s.now = next.at
		next.done = true
		s.remove(next)
		s.mu.Unlock()

		next.fn()
	}
}

// Elapsed is the virtual time since the scheduler was created.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Pending is the number of tasks that have neither run nor been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

func (s *Scheduler) next(limit time.Duration) *task {
	var best *task

	for _, t := range s.tasks {
		if t.at > limit {
			continue
		}

		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}

	return best
}

func (s *Scheduler) remove(t *task) {
	for i, cur := range s.tasks {
		if cur == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
