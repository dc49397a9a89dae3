package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/supplyrun.yaml
var defaultSupplyRunYAML []byte

// DefaultSupplyRunConfig returns the built-in configuration. It matches
// defaults/supplyrun.yaml and is used when the embedded file cannot be parsed.
func DefaultSupplyRunConfig() SupplyRunConfig {
	return SupplyRunConfig{
		World: WorldConfig{
			Width:        400,
			ViewLeft:     -50,
			EntitySize:   50,
			GroundOffset: 3,
		},
		Obstacle: TrackConfig{
			Start:    400,
			End:      -50,
			Duration: 3000 * time.Millisecond,
		},
		Supply: TrackConfig{
			Start:     600,
			End:       -50,
			Duration:  5000 * time.Millisecond,
			Elevation: 50,
		},
		Jump: JumpConfig{
			Peak: -100,
			Rise: 500 * time.Millisecond,
			Fall: 500 * time.Millisecond,
			Rows: 6,
		},
		Collision: CollisionConfig{
			BandMin:  0,
			BandMax:  50,
			Sampling: "frame",
		},
		Scoring: ScoringConfig{
			PassPoints:   1,
			PickupPoints: 10,
		},
	}
}
