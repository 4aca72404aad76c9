package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Speed:     10,
		GridSize:  20,
		WrapWalls: false,
	}
}

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.25,
			FlapImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     5,
			SpawnInterval: 90,
			MinGapSize:    8,
			MaxGapSize:    12,
			TopMargin:     3,
			BottomMargin:  3,
			CapOverhang:   1,
		},
		Player: FlappyPlayer{
			X:      10,
			Radius: 1.4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GapReduction:    4,
			},
		},
	}
}

// DefaultMatch3Config returns the default Match-Three configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Cols:              8,
			Rows:              8,
			GemTypes:          6,
			ReshuffleAttempts: 10,
		},
		Timing: Match3Timing{
			SwapTicks:        12,
			ClearTicks:       18,
			FallTicksPerCell: 4,
			HintDelayTicks:   300,  // 5 seconds at 60 FPS
			RunTicks:         7200, // 2 minutes at 60 FPS
		},
		Scoring: Match3Scoring{
			BaseMatch:     50,
			PerExtraGem:   25,
			TimeBonusTick: 12,
		},
	}
}

// DefaultInvadersConfig returns the default Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Formation: InvadersFormation{
			Rows:          5,
			Cols:          11,
			SpacingX:      4,
			SpacingY:      2,
			BaseStepTicks: 48,
			MinStepTicks:  6,
			DropDistance:  1,
			EdgeMargin:    4,
			WaveSpeedup:   4,
		},
		Fire: InvadersFire{
			BaseIntervalTicks: 90,
			MinIntervalTicks:  24,
			WaveReduction:     8,
			BulletSpeed:       0.5,
		},
		UFO: InvadersUFO{
			MinSpawnTicks: 600,
			MaxSpawnTicks: 1800,
			Speed:         0.4,
			Points:        100,
		},
		Shields: InvadersShields{
			Count:  4,
			BlockW: 6,
			BlockH: 3,
		},
		Player: InvadersPlayer{
			Speed:           1,
			Lives:           3,
			InvincibleTicks: 90,
			BulletSpeed:     1.0,
		},
	}
}

// DefaultRunnerConfig returns the default Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      0.25,
			JumpImpulse:  -1.6,
			HoldBoost:    0.12,
			HoldBoostMax: 12,
			MaxFallSpeed: 2.5,
			BaseSpeed:    0.6,
			Acceleration: 0.0002,
			MaxSpeed:     2.0,
			MaxJumps:     2,
			LandingBand:  1.0,
			Forgiveness:  0.4,
			CoinRadius:   1.5,
		},
		Generation: RunnerGeneration{
			SpawnAhead:     30,
			MinPlatformW:   8,
			MaxPlatformW:   20,
			MinGapW:        3,
			MaxGapW:        8,
			MaxStepUp:      3,
			ObstacleChance: 40,
			CoinChance:     50,
		},
		Scoring: RunnerScoring{
			DistanceDivisor: 10,
			CoinBonus:       10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 10800, // 3 minutes at 60 FPS
			},
			Scaling: ScalingConfig{
				SpacingReduction: 4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "flappy":
		return defaultFlappyYAML
	case "match3":
		return defaultMatch3YAML
	case "invaders":
		return defaultInvadersYAML
	case "runner":
		return defaultRunnerYAML
	default:
		return nil
	}
}
