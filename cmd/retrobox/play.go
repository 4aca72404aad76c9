package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/games/flappy"
	"github.com/retrobox/retrobox/internal/games/invaders"
	"github.com/retrobox/retrobox/internal/games/match3"
	"github.com/retrobox/retrobox/internal/games/runner"
	"github.com/retrobox/retrobox/internal/games/snake"
	"github.com/retrobox/retrobox/internal/platform/tui"
	"github.com/retrobox/retrobox/internal/registry"
	"github.com/retrobox/retrobox/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpeed      int
	flagGridSize   int
	flagWrapWalls  bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move
  Space       - Jump/Flap (hold for higher jumps in runner)
  F/X         - Fire
  Enter       - Select/Swap
  P           - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Snake additionally accepts --speed, --grid-size and --wrap to build a
custom game; these override the chosen preset.

Examples:
  retrobox play flappy
  retrobox play runner --difficulty easy
  retrobox play snake --speed 14 --grid-size 24 --wrap
  retrobox play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagSpeed, "speed", 0, "Snake: cells per second")
	playCmd.Flags().IntVar(&flagGridSize, "grid-size", 0, "Snake: playfield size")
	playCmd.Flags().BoolVar(&flagWrapWalls, "wrap", false, "Snake: wrap around walls instead of dying")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'retrobox list' to see available games.")
		os.Exit(1)
	}

	// Get terminal size early for the settings selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path for games before creation
	switch gameID {
	case "snake":
		snake.SetConfigPath(flagConfig)
	case "flappy":
		flappy.SetConfigPath(flagConfig)
	case "match3":
		match3.SetConfigPath(flagConfig)
	case "invaders":
		invaders.SetConfigPath(flagConfig)
	case "runner":
		runner.SetConfigPath(flagConfig)
	}

	// Resolve difficulty: explicit flags win, otherwise the selector
	if !applyDifficultyFlags(cmd, gameID) {
		if tui.HasSettings(gameID) && flagDifficulty == "" {
			result, selErr := tui.RunSettings(gameID, gameTitle(gameID), width, height)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			if result.Back || result.Quit || result.Selection == nil {
				return
			}
			tui.ApplySettings(gameID, *result.Selection)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyDifficultyFlags pushes --difficulty and the snake custom flags into
// the game package. Returns true if flags decided the settings, so the
// interactive selector is skipped.
func applyDifficultyFlags(cmd *cobra.Command, gameID string) bool {
	snakeCustom := gameID == "snake" &&
		(cmd.Flags().Changed("speed") || cmd.Flags().Changed("grid-size") || cmd.Flags().Changed("wrap"))

	if snakeCustom {
		base := config.SnakePreset(config.DifficultyPreset(flagDifficulty))
		if cmd.Flags().Changed("speed") {
			base.Speed = flagSpeed
		}
		if cmd.Flags().Changed("grid-size") {
			base.GridSize = flagGridSize
		}
		if cmd.Flags().Changed("wrap") {
			base.WrapWalls = flagWrapWalls
		}
		snake.SetCustom(base)
		return true
	}

	if flagDifficulty == "" {
		return false
	}

	switch gameID {
	case "snake":
		snake.SetDifficultyPreset(flagDifficulty)
	case "flappy":
		flappy.SetDifficultyPreset(flagDifficulty)
	case "runner":
		runner.SetDifficultyPreset(flagDifficulty)
	default:
		return false
	}
	return true
}

// gameTitle resolves a registered game's display title.
func gameTitle(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
