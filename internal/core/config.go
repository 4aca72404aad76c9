package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
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

// Terminal signals how a simulation tick ended. The platform's FSM driver
// interprets these; game logic never returns errors for normal play.
type Terminal int

const (
	TerminalNone        Terminal = iota
	TerminalCollided             // Player hit something fatal
	TerminalTimeUp               // Countdown expired
	TerminalWaveCleared          // All enemies destroyed, next wave follows
)

// String returns a human-readable name for the terminal condition.
func (t Terminal) String() string {
	switch t {
	case TerminalNone:
		return "none"
	case TerminalCollided:
		return "collided"
	case TerminalTimeUp:
		return "time_up"
	case TerminalWaveCleared:
		return "wave_cleared"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int   // Current score
	Lives    int   // Remaining lives (0 for games without lives)
	Wave     int   // Current wave number (0 for games without waves)
	TimeLeft int   // Remaining ticks on the countdown (0 for untimed games)
	Phase    Phase // Current FSM phase
}

// GameOver reports whether the game has ended.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Paused reports whether the game is paused.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	Terminal Terminal // Terminal condition raised this tick, if any
}
