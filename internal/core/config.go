package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and tick rate.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Jumping  bool // Whether the runner is mid-jump
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Event is a discrete gameplay occurrence reported by a tick.
// The platform uses events for sound cues and logging.
type Event int

const (
	EventNone            Event = iota
	EventJump                  // A jump cycle started
	EventObstaclePassed        // Obstacle finished a pass without collision
	EventSupplyCollected       // Supply item picked up
	EventCollision             // Obstacle hit the runner, game over
	EventRestart               // Session restarted
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventJump:
		return "Jump"
	case EventObstaclePassed:
		return "ObstaclePassed"
	case EventSupplyCollected:
		return "SupplyCollected"
	case EventCollision:
		return "Collision"
	case EventRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}
