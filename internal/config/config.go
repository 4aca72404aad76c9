// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform. Each game resolves its
// settings once at run start; the snapshot is immutable for the run.
package config

import "github.com/retrobox/retrobox/internal/core"

// Documented bounds for Snake custom settings. Out-of-range values are
// clamped, never rejected.
const (
	SnakeSpeedMin    = 4
	SnakeSpeedMax    = 25
	SnakeGridSizeMin = 10
	SnakeGridSizeMax = 35
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Speed     int  `yaml:"speed"`      // Grid moves per second
	GridSize  int  `yaml:"grid_size"`  // Board is GridSize x GridSize cells
	WrapWalls bool `yaml:"wrap_walls"` // Teleport through walls instead of dying
}

// Clamped returns the config with speed and grid size forced into the
// documented bounds.
func (c SnakeConfig) Clamped() SnakeConfig {
	c.Speed = core.Clamp(c.Speed, SnakeSpeedMin, SnakeSpeedMax)
	c.GridSize = core.Clamp(c.GridSize, SnakeGridSizeMin, SnakeGridSizeMax)
	return c
}

// FlappyConfig contains all configuration for the Flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration per tick
	FlapImpulse  float64 `yaml:"flap_impulse"`   // Velocity set (not added) on flap
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity
	BaseSpeed    float64 `yaml:"base_speed"`     // Pipe scroll speed, cells per tick
}

// FlappyObstacles defines pipe parameters for Flappy.
type FlappyObstacles struct {
	PipeWidth     int `yaml:"pipe_width"`
	SpawnInterval int `yaml:"spawn_interval"` // Ticks between pipe spawns
	MinGapSize    int `yaml:"min_gap_size"`
	MaxGapSize    int `yaml:"max_gap_size"`
	TopMargin     int `yaml:"top_margin"`    // Safe bound above the gap center range
	BottomMargin  int `yaml:"bottom_margin"` // Safe bound below the gap center range
	CapOverhang   int `yaml:"cap_overhang"`  // Horizontal pipe-cap margin for collision
}

// FlappyPlayer defines the bird parameters.
type FlappyPlayer struct {
	X      int     `yaml:"x"`      // Fixed horizontal position of the bird center
	Radius float64 `yaml:"radius"` // Collision circle radius
}

// Match3Config contains all configuration for the Match-Three game.
type Match3Config struct {
	Board   Match3Board   `yaml:"board"`
	Timing  Match3Timing  `yaml:"timing"`
	Scoring Match3Scoring `yaml:"scoring"`
}

// Clamped returns the config with board dimensions and gem variety forced
// into ranges the board generator can satisfy: with fewer than three gem
// types the no-immediate-match fill cannot terminate.
func (c Match3Config) Clamped() Match3Config {
	c.Board.Cols = core.Max(c.Board.Cols, 3)
	c.Board.Rows = core.Max(c.Board.Rows, 3)
	c.Board.GemTypes = core.Max(c.Board.GemTypes, 3)
	c.Board.ReshuffleAttempts = core.Max(c.Board.ReshuffleAttempts, 0)
	return c
}

// Match3Board defines board dimensions and gem variety.
type Match3Board struct {
	Cols              int `yaml:"cols"`
	Rows              int `yaml:"rows"`
	GemTypes          int `yaml:"gem_types"`
	ReshuffleAttempts int `yaml:"reshuffle_attempts"` // Bounded retries before a fresh board
}

// Match3Timing defines animation and timer durations, in ticks.
type Match3Timing struct {
	SwapTicks        int `yaml:"swap_ticks"`          // Swap (and swap-back) animation
	ClearTicks       int `yaml:"clear_ticks"`         // Matched-gem clearing animation
	FallTicksPerCell int `yaml:"fall_ticks_per_cell"` // Gravity fall speed
	HintDelayTicks   int `yaml:"hint_delay_ticks"`    // Idle time before a hint shows
	RunTicks         int `yaml:"run_ticks"`           // Countdown for a whole run
}

// Match3Scoring defines score and time-bonus values.
type Match3Scoring struct {
	BaseMatch     int `yaml:"base_match"`      // Points for a minimal 3-run at cascade 1
	PerExtraGem   int `yaml:"per_extra_gem"`   // Bonus per gem beyond the minimal run
	TimeBonusTick int `yaml:"time_bonus_tick"` // Ticks added to the countdown per cleared gem
}

// InvadersConfig contains all configuration for the Invaders game.
type InvadersConfig struct {
	Formation InvadersFormation `yaml:"formation"`
	Fire      InvadersFire      `yaml:"fire"`
	UFO       InvadersUFO       `yaml:"ufo"`
	Shields   InvadersShields   `yaml:"shields"`
	Player    InvadersPlayer    `yaml:"player"`
}

// InvadersFormation defines the alien formation and its movement.
type InvadersFormation struct {
	Rows          int `yaml:"rows"`
	Cols          int `yaml:"cols"`
	SpacingX      int `yaml:"spacing_x"` // Cells between alien columns
	SpacingY      int `yaml:"spacing_y"` // Cells between alien rows
	BaseStepTicks int `yaml:"base_step_ticks"`
	MinStepTicks  int `yaml:"min_step_ticks"` // Clamp for the speed-up curve
	DropDistance  int `yaml:"drop_distance"`  // Rows dropped on an edge reversal
	EdgeMargin    int `yaml:"edge_margin"`    // Horizontal screen margin aliens stay inside
	WaveSpeedup   int `yaml:"wave_speedup"`   // Step-tick reduction per wave
}

// InvadersFire defines enemy shooting cadence.
type InvadersFire struct {
	BaseIntervalTicks int     `yaml:"base_interval_ticks"`
	MinIntervalTicks  int     `yaml:"min_interval_ticks"`
	WaveReduction     int     `yaml:"wave_reduction"` // Interval reduction per wave
	BulletSpeed       float64 `yaml:"bullet_speed"`   // Cells per tick, downward
}

// InvadersUFO defines the bonus saucer.
type InvadersUFO struct {
	MinSpawnTicks int     `yaml:"min_spawn_ticks"`
	MaxSpawnTicks int     `yaml:"max_spawn_ticks"`
	Speed         float64 `yaml:"speed"`
	Points        int     `yaml:"points"`
}

// InvadersShields defines the destructible bunkers.
type InvadersShields struct {
	Count  int `yaml:"count"`
	BlockW int `yaml:"block_w"` // Blocks per shield, horizontally
	BlockH int `yaml:"block_h"` // Blocks per shield, vertically
}

// InvadersPlayer defines the player cannon.
type InvadersPlayer struct {
	Speed           int     `yaml:"speed"` // Cells moved per tick while a key is held
	Lives           int     `yaml:"lives"`
	InvincibleTicks int     `yaml:"invincible_ticks"` // Grace window after being hit
	BulletSpeed     float64 `yaml:"bullet_speed"`     // Cells per tick, upward
}

// RunnerConfig contains all configuration for the Runner game.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Generation RunnerGeneration `yaml:"generation"`
	Scoring    RunnerScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines player and world motion.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	HoldBoost    float64 `yaml:"hold_boost"`     // Extra upward acceleration while jump is held
	HoldBoostMax int     `yaml:"hold_boost_max"` // Ticks the hold boost lasts
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`   // World scroll, cells per tick
	Acceleration float64 `yaml:"acceleration"` // Scroll speed gain per tick
	MaxSpeed     float64 `yaml:"max_speed"`
	MaxJumps     int     `yaml:"max_jumps"`    // 1 or 2 (double jump)
	LandingBand  float64 `yaml:"landing_band"` // Platform top band depth for landing
	Forgiveness  float64 `yaml:"forgiveness"`  // Obstacle hitbox shrink margin
	CoinRadius   float64 `yaml:"coin_radius"`  // Pickup proximity threshold
}

// RunnerGeneration defines procedural terrain parameters.
type RunnerGeneration struct {
	SpawnAhead     int `yaml:"spawn_ahead"` // Lookahead margin past the right edge
	MinPlatformW   int `yaml:"min_platform_w"`
	MaxPlatformW   int `yaml:"max_platform_w"`
	MinGapW        int `yaml:"min_gap_w"`
	MaxGapW        int `yaml:"max_gap_w"`
	MaxStepUp      int `yaml:"max_step_up"`     // Largest platform height change
	ObstacleChance int `yaml:"obstacle_chance"` // Percent chance per platform
	CoinChance     int `yaml:"coin_chance"`     // Percent chance per platform
}

// RunnerScoring defines the score formula.
type RunnerScoring struct {
	DistanceDivisor int `yaml:"distance_divisor"` // Cells traveled per point
	CoinBonus       int `yaml:"coin_bonus"`
}

// Clamped returns the config with generation and scoring values a sparse
// or inverted config file may leave at zero forced into workable ranges.
// The scroll never stalls: every generated platform is at least one cell
// wide and the distance divisor is at least one.
func (c RunnerConfig) Clamped() RunnerConfig {
	c.Scoring.DistanceDivisor = core.Max(c.Scoring.DistanceDivisor, 1)
	c.Generation.MinPlatformW = core.Max(c.Generation.MinPlatformW, 1)
	c.Generation.MaxPlatformW = core.Max(c.Generation.MaxPlatformW, c.Generation.MinPlatformW)
	c.Generation.MinGapW = core.Max(c.Generation.MinGapW, 0)
	c.Generation.MaxGapW = core.Max(c.Generation.MaxGapW, c.Generation.MinGapW)
	c.Generation.MaxStepUp = core.Max(c.Generation.MaxStepUp, 0)
	return c
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
	DifficultyCustom DifficultyPreset = "custom" // Snake only: caller-edited values
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// SnakePreset resolves a difficulty tag into a concrete Snake parameter set.
// The custom preset starts from normal; the caller overrides fields and the
// result is clamped at run start.
func SnakePreset(preset DifficultyPreset) SnakeConfig {
	switch preset {
	case DifficultyEasy:
		return SnakeConfig{Speed: 6, GridSize: 20, WrapWalls: true}
	case DifficultyHard:
		return SnakeConfig{Speed: 16, GridSize: 26, WrapWalls: false}
	default: // normal, custom base
		return SnakeConfig{Speed: 10, GridSize: 20, WrapWalls: false}
	}
}
