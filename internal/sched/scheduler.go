// Package sched provides a single-threaded, virtual-time task scheduler.
//
// Time only moves when Advance is called, which makes every timer in the game
// deterministic: the platform advances the scheduler by one fixed tick per
// frame, tests advance it by whatever they need. Tasks never run concurrently;
// a task that arms another task enqueues it instead of recursing.
package sched

import (
	"container/heap"
	"time"
)

// TaskID identifies an armed task. The zero value is never issued.
type TaskID uint64

type task struct {
	id      TaskID
	at      time.Duration // virtual deadline
	armedAt time.Duration
	epoch   uint64 // Advance call during which the task was armed
	fn      func()
	index   int
}

// taskQueue is a min-heap ordered by deadline, then by arming order.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].id < q[j].id
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs one-shot tasks at virtual deadlines.
// It is not safe for concurrent use; each game session owns one.
type Scheduler struct {
	now     time.Duration
	lastID  TaskID
	epoch   uint64
	queue   taskQueue
	pending map[TaskID]*task
}

// New creates a scheduler positioned at virtual time zero.
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[TaskID]*task),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of armed tasks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After arms fn to run once d from now. Negative delays are treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.lastID++
	t := &task{
		id:      s.lastID,
		at:      s.now + d,
		armedAt: s.now,
		epoch:   s.epoch,
		fn:      fn,
	}
	heap.Push(&s.queue, t)
	s.pending[t.id] = t
	return t.id
}

// Cancel disarms a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.pending[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.pending, id)
	return true
}

// Advance moves virtual time forward by d and runs every task whose deadline
// falls inside the window, in deadline order. Tasks armed by a running task
// also run in this call when due, except zero-delay tasks, which wait for the
// next Advance so a task that keeps re-arming itself cannot stall the loop.
// It returns the number of tasks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	s.epoch++
	target := s.now + d
	fired := 0

	var deferred []*task
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*task)
		if t.epoch == s.epoch && t.at == t.armedAt {
			deferred = append(deferred, t)
			continue
		}
		delete(s.pending, t.id)
		if t.at > s.now {
			s.now = t.at
		}
		t.fn()
		fired++
	}
	for _, t := range deferred {
		// Tag with the previous epoch so the next Advance runs it.
		t.epoch = s.epoch - 1
		heap.Push(&s.queue, t)
	}

	s.now = target
	return fired
}
