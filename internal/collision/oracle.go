// Package collision decides obstacle hits and supply pickups.
//
// The decision is a pure function of a Sample (positions and jump state at
// one instant) against a Zone (the horizontal band in front of the runner).
package collision

import "fmt"

// Zone is the open horizontal interval (Min, Max) around the runner's fixed
// position. An entity whose offset lies strictly inside it is level with the
// runner.
type Zone struct {
	Min float64
	Max float64
}

// DefaultZone returns the (0, 50) band.
func DefaultZone() Zone {
	return Zone{Min: 0, Max: 50}
}

// Contains reports whether x lies strictly inside the band.
func (z Zone) Contains(x float64) bool {
	return x > z.Min && x < z.Max
}

// Sample is a snapshot of everything the oracle looks at, taken at one instant.
type Sample struct {
	Obstacle float64 // obstacle horizontal offset
	Supply   float64 // supply horizontal offset
	Jumping  bool    // whether a jump cycle is in flight
}

// Outcome is the oracle's verdict for a sample.
type Outcome struct {
	Collision bool // obstacle hit a grounded runner
	Pickup    bool // airborne runner reached the supply
}

// Collides reports an obstacle hit: obstacle in the band while on the ground.
func (z Zone) Collides(s Sample) bool {
	return z.Contains(s.Obstacle) && !s.Jumping
}

// PicksUp reports a supply pickup: supply in the band while airborne.
func (z Zone) PicksUp(s Sample) bool {
	return z.Contains(s.Supply) && s.Jumping
}

// Evaluate returns both verdicts for the sample.
func (z Zone) Evaluate(s Sample) Outcome {
	return Outcome{
		Collision: z.Collides(s),
		Pickup:    z.PicksUp(s),
	}
}

// Sampling selects when the oracle is consulted.
type Sampling string

const (
	// SamplingPass consults the oracle only when an entity completes a pass.
	SamplingPass Sampling = "pass"
	// SamplingFrame also consults it on every simulation tick.
	SamplingFrame Sampling = "frame"
)

// ParseSampling converts a config string into a Sampling mode.
func ParseSampling(s string) (Sampling, error) {
	switch Sampling(s) {
	case SamplingPass, SamplingFrame:
		return Sampling(s), nil
	default:
		return "", fmt.Errorf("collision: unknown sampling mode %q (want %q or %q)", s, SamplingPass, SamplingFrame)
	}
}
