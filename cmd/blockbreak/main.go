// blockbreak is a brick breaker for the terminal, with a stage editor,
// shareable stage codes and play over SSH.
//
// Usage:
//
//	blockbreak                 - Launcher: pick the game, the editor or the scoreboard
//	blockbreak play            - Play straight away
//	blockbreak list            - List game variants
//	blockbreak scores [game]   - Show high scores
//	blockbreak serve           - Start the SSH server
//	blockbreak levels          - Print generated level layouts
//	blockbreak stage ...       - Encode, decode and manage saved stages
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible levels and drops
//	--db <path>          - Database path (default: ~/.blockbreak/scores.db)
//	--config <path>      - Custom blockbreak.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log <path>         - Log file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/platform/tui"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagMute       bool
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbreak",
	Short: "Block Breaker - break bricks in your terminal",
	Long: `Block Breaker is a brick breaker for the terminal: combos, power-ups,
endless generated levels and a stage editor whose layouts travel as short
share codes.

Run without a command to open the launcher.

Examples:
  blockbreak
  blockbreak play --difficulty hard
  blockbreak play --stage Af8A...
  blockbreak stage show Af8A...
  blockbreak serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGameFlags,
	RunE:              runLauncher,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blockbreak/scores.db", "Path to scores and stages database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom blockbreak.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(configCmd)
}

// applyGameFlags validates the shared flags and hands them to the game.
func applyGameFlags(_ *cobra.Command, _ []string) error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	blockbreak.SetConfigPath(flagConfig)
	blockbreak.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runLauncher(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(flagLogPath, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sink := openAudio(cmd, logger)
	defer sink.Close()

	return tui.RunLauncher(runtimeConfig(), tui.Options{
		Store:  store,
		Sink:   sink,
		Logger: logger,
	})
}
