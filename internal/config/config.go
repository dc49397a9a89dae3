// Package config provides YAML-based game configuration loading for
// Supply Run.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SupplyRunConfig contains all tunables for the game.
type SupplyRunConfig struct {
	World     WorldConfig     `yaml:"world"`
	Obstacle  TrackConfig     `yaml:"obstacle"`
	Supply    TrackConfig     `yaml:"supply"`
	Jump      JumpConfig      `yaml:"jump"`
	Collision CollisionConfig `yaml:"collision"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// WorldConfig maps world units onto the terminal.
type WorldConfig struct {
	Width        float64 `yaml:"width"`         // Right edge of the visible world
	ViewLeft     float64 `yaml:"view_left"`     // Left edge of the visible world
	EntitySize   float64 `yaml:"entity_size"`   // Width of runner, obstacle and supply
	GroundOffset int     `yaml:"ground_offset"` // Rows between ground line and screen bottom
}

// TrackConfig describes one horizontally moving entity.
type TrackConfig struct {
	Start     float64       `yaml:"start"`     // Offset at the beginning of a pass
	End       float64       `yaml:"end"`       // Offset at the end of a pass
	Duration  time.Duration `yaml:"duration"`  // Travel time of one pass
	Elevation float64       `yaml:"elevation"` // Height above ground, in jump units
}

// JumpConfig describes the runner's jump cycle.
type JumpConfig struct {
	Peak float64       `yaml:"peak"` // Vertical offset at the top (negative = up)
	Rise time.Duration `yaml:"rise"`
	Fall time.Duration `yaml:"fall"`
	Rows int           `yaml:"rows"` // Terminal rows spanned by a full jump
}

// CollisionConfig describes the band in front of the runner.
type CollisionConfig struct {
	BandMin  float64 `yaml:"band_min"`
	BandMax  float64 `yaml:"band_max"`
	Sampling string  `yaml:"sampling"` // "pass" or "frame"
}

// ScoringConfig sets the points awarded per event.
type ScoringConfig struct {
	PassPoints   int `yaml:"pass_points"`   // Obstacle survived
	PickupPoints int `yaml:"pickup_points"` // Supply collected
}

// Validate checks the invariants the game loop relies on.
func (c SupplyRunConfig) Validate() error {
	var errs []error

	for _, tr := range []struct {
		name string
		cfg  TrackConfig
	}{
		{"obstacle", c.Obstacle},
		{"supply", c.Supply},
	} {
		if tr.cfg.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration must be positive, got %v", tr.name, tr.cfg.Duration))
		}
		if tr.cfg.Start <= tr.cfg.End {
			errs = append(errs, fmt.Errorf("%s.start (%v) must be greater than %s.end (%v)", tr.name, tr.cfg.Start, tr.name, tr.cfg.End))
		}
	}

	if c.Jump.Rise <= 0 || c.Jump.Fall <= 0 {
		errs = append(errs, fmt.Errorf("jump.rise and jump.fall must be positive, got %v and %v", c.Jump.Rise, c.Jump.Fall))
	}
	if c.Jump.Peak >= 0 {
		errs = append(errs, fmt.Errorf("jump.peak must be negative (up), got %v", c.Jump.Peak))
	}
	if c.Collision.BandMin >= c.Collision.BandMax {
		errs = append(errs, fmt.Errorf("collision band (%v, %v) is empty", c.Collision.BandMin, c.Collision.BandMax))
	}
	if c.Collision.Sampling != "pass" && c.Collision.Sampling != "frame" {
		errs = append(errs, fmt.Errorf("collision.sampling must be \"pass\" or \"frame\", got %q", c.Collision.Sampling))
	}
	if c.World.Width <= c.World.ViewLeft {
		errs = append(errs, fmt.Errorf("world.width (%v) must be greater than world.view_left (%v)", c.World.Width, c.World.ViewLeft))
	}
	if c.Scoring.PassPoints < 0 || c.Scoring.PickupPoints < 0 {
		errs = append(errs, errors.New("scoring points must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
