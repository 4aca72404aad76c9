package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config. Search order:
// customPath -> ~/.retrobox/configs/<name> -> ./configs/<name> -> embedded default.
// A customPath that cannot be read or parsed is an error; the fallback tiers
// fail silently into the next tier.
func load(customPath, filename string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("config: failed to parse embedded %s: %w", filename, err)
	}
	return nil
}

// LoadSnake loads the Snake configuration, clamped to the documented bounds.
func LoadSnake(customPath string) (SnakeConfig, error) {
	var cfg SnakeConfig
	if err := load(customPath, "snake.yaml", defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), err
	}
	return cfg.Clamped(), nil
}

// LoadFlappy loads the Flappy configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	var cfg FlappyConfig
	if err := load(customPath, "flappy.yaml", defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), err
	}
	return cfg, nil
}

// LoadMatch3 loads the Match-Three configuration, clamped so the board
// generator can always fill the board.
func LoadMatch3(customPath string) (Match3Config, error) {
	var cfg Match3Config
	if err := load(customPath, "match3.yaml", defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), err
	}
	return cfg.Clamped(), nil
}

// LoadInvaders loads the Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	var cfg InvadersConfig
	if err := load(customPath, "invaders.yaml", defaultInvadersYAML, &cfg); err != nil {
		return DefaultInvadersConfig(), err
	}
	return cfg, nil
}

// LoadRunner loads the Runner configuration, clamped so terrain generation
// and scoring stay valid on sparse files.
func LoadRunner(customPath string) (RunnerConfig, error) {
	var cfg RunnerConfig
	if err := load(customPath, "runner.yaml", defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), err
	}
	return cfg.Clamped(), nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".retrobox", "configs", filename)
}
