// retrobox is a collection of retro-style arcade games for the terminal.
//
// Usage:
//
//	retrobox list              - List available games
//	retrobox play <game>       - Play a game
//	retrobox menu              - Start menu to pick games interactively
//	retrobox serve             - Start SSH server for remote play
//	retrobox scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.retrobox/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/retrobox/retrobox/internal/games/flappy"
	_ "github.com/retrobox/retrobox/internal/games/invaders"
	_ "github.com/retrobox/retrobox/internal/games/match3"
	_ "github.com/retrobox/retrobox/internal/games/runner"
	_ "github.com/retrobox/retrobox/internal/games/snake"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "retrobox",
	Short: "Retrobox - Play retro games in your terminal",
	Long: `Retrobox is a terminal-based gaming platform that lets you play
classic-style games directly in your terminal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  retrobox list
  retrobox play flappy
  retrobox menu
  retrobox serve --ssh :2222
  retrobox scores invaders`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.retrobox/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
