package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Target frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the nominal frame duration in seconds for the tick rate.
func (c RuntimeConfig) FrameDelta() float32 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float32(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	GameOver bool    // Whether the round has ended
	Paused   bool    // Whether the game is paused
	Distance float64 // Distance traveled this round
	Speed    float32 // Current forward speed
	TopSpeed float32 // Highest forward speed reached this round
}

// StepResult is returned by Game.Step() after each simulation frame.
type StepResult struct {
	State GameState

	// Ended is true only on the frame the round transitioned to game over.
	Ended bool
}
