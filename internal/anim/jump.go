package anim

import (
	"time"

	"github.com/vovakirdan/supplyrun/internal/sched"
)

// JumpPhase is the current segment of a jump cycle.
type JumpPhase int

const (
	JumpIdle JumpPhase = iota
	JumpRising
	JumpFalling
)

// String returns a human-readable name for the phase.
func (p JumpPhase) String() string {
	switch p {
	case JumpIdle:
		return "idle"
	case JumpRising:
		return "rising"
	case JumpFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Jump drives the runner's vertical offset through a fixed rise-then-fall
// cycle. Offsets are negative upwards: the cycle goes 0 -> peak -> 0.
// A cycle cannot be cancelled, extended or re-triggered while in flight.
type Jump struct {
	anim  *Animator
	peak  float64
	rise  time.Duration
	fall  time.Duration
	phase JumpPhase
}

// NewJump creates an idle jump controller.
func NewJump(s *sched.Scheduler, peak float64, rise, fall time.Duration) *Jump {
	return &Jump{
		anim: NewAnimator(s),
		peak: peak,
		rise: rise,
		fall: fall,
	}
}

// Jump starts a cycle and reports whether it did. While a cycle is active the
// call is a no-op.
func (j *Jump) Jump() bool {
	if j.phase != JumpIdle {
		return false
	}
	j.phase = JumpRising
	j.anim.Start(0, j.peak, j.rise, func() {
		j.phase = JumpFalling
		j.anim.Start(j.peak, 0, j.fall, func() {
			j.phase = JumpIdle
		})
	})
	return true
}

// Active reports whether a cycle is in flight.
func (j *Jump) Active() bool {
	return j.phase != JumpIdle
}

// Phase returns the current segment of the cycle.
func (j *Jump) Phase() JumpPhase {
	return j.phase
}

// Offset returns the current vertical offset (0 on the ground, peak at the top).
func (j *Jump) Offset() float64 {
	return j.anim.Value()
}

// Peak returns the configured peak offset.
func (j *Jump) Peak() float64 {
	return j.peak
}
