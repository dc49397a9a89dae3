// Package anim drives scalar values over virtual time.
//
// An Animator interpolates one value linearly between two offsets and reports
// completion through a callback; Jump chains two animator runs into the
// runner's up/down motion. Both run on a sched.Scheduler and are only touched
// from the scheduler's goroutine.
package anim

import (
	"time"

	"github.com/vovakirdan/supplyrun/internal/core"
	"github.com/vovakirdan/supplyrun/internal/sched"
)

// Animator moves a single value from a start offset to an end offset over a
// fixed duration.
type Animator struct {
	sched     *sched.Scheduler
	from      float64
	to        float64
	duration  time.Duration
	startedAt time.Duration
	value     float64 // value while idle
	running   bool
	completed bool // last run reached its end
	task      sched.TaskID
	gen       uint64 // bumped on every Start/Stop, invalidates older completions
}

// NewAnimator creates an idle animator bound to the scheduler.
func NewAnimator(s *sched.Scheduler) *Animator {
	return &Animator{sched: s}
}

// Start begins a new run from 'from' to 'to' lasting d. Any run in progress is
// abandoned and its completion will never fire. When the run reaches its end
// the value is set to exactly 'to', the animator goes idle and done is called
// once. A non-positive d completes the run on the next scheduler advance.
func (a *Animator) Start(from, to float64, d time.Duration, done func()) {
	a.Stop()

	a.gen++
	gen := a.gen
	a.from = from
	a.to = to
	a.duration = d
	a.startedAt = a.sched.Now()
	a.value = from
	a.running = true
	a.completed = false

	a.task = a.sched.After(d, func() {
		if gen != a.gen || !a.running {
			return
		}
		a.value = to
		a.running = false
		a.completed = true
		if done != nil {
			done()
		}
	})
}

// Stop freezes the animator at its current value and drops the pending
// completion. Stopping an idle animator does nothing.
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.value = a.Value()
	a.running = false
	a.sched.Cancel(a.task)
	a.gen++
}

// Set places an idle animator at v. It stops any run in progress.
func (a *Animator) Set(v float64) {
	a.Stop()
	a.value = v
	a.completed = false
}

// Value returns the current interpolated value. It is safe to call at any
// time, including before the first run and from inside other timer callbacks.
func (a *Animator) Value() float64 {
	if !a.running {
		return a.value
	}
	return a.from + (a.to-a.from)*a.Progress()
}

// Progress returns how far the current run is, in [0, 1].
// An idle animator reports 1 if its last run completed and 0 otherwise.
func (a *Animator) Progress() float64 {
	if !a.running {
		if a.completed {
			return 1
		}
		return 0
	}
	if a.duration <= 0 {
		return 0
	}
	elapsed := a.sched.Now() - a.startedAt
	return core.ClampF(float64(elapsed)/float64(a.duration), 0, 1)
}

// Running reports whether a run is in progress.
func (a *Animator) Running() bool {
	return a.running
}
