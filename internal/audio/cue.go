// Package audio plays short synthesized sound cues for game events.
// Sound is optional: a nil *Player is valid and silent.
package audio

import "github.com/vovakirdan/supplyrun/internal/core"

// Cue identifies one sound effect.
type Cue int

const (
	CueNone   Cue = iota
	CueJump       // rising two-note blip
	CuePass       // short tick when an obstacle is cleared
	CuePickup     // bell for a collected supply
	CueCrash      // low buzz on collision
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CuePass:
		return "pass"
	case CuePickup:
		return "pickup"
	case CueCrash:
		return "crash"
	default:
		return "none"
	}
}

// CueFor returns the cue played for a game event, or CueNone.
func CueFor(e core.Event) Cue {
	switch e {
	case core.EventJump:
		return CueJump
	case core.EventObstaclePassed:
		return CuePass
	case core.EventSupplyCollected:
		return CuePickup
	case core.EventCollision:
		return CueCrash
	default:
		return CueNone
	}
}
