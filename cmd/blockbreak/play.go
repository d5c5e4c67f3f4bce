package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/platform/tui"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

var (
	flagGame  string
	flagStage string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play without the launcher",
	Long: `Start the game directly.

Controls:
  A/D, Left/Right, mouse  - Move the paddle
  Enter/Space             - Start, resume, next level
  P                       - Pause
  Esc/B                   - Back (from pause: to the menu)
  E                       - Stage editor (from the menu)
  Q/Ctrl+C                - Quit

Editor:
  Arrows/WASD  - Move the cursor
  Enter/Space  - Paint with the current tool
  Tab          - Next tool
  X/Backspace  - Erase
  T            - Test play
  C            - Share code
  Ctrl+X       - Clear the grid

--stage takes a share code or the name of a saved stage and opens it in
the editor.

Examples:
  blockbreak play
  blockbreak play --difficulty easy --mute
  blockbreak play --game editor
  blockbreak play --stage fortress`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGame, "game", "blockbreak", "Game variant to start (see 'blockbreak list')")
	playCmd.Flags().StringVar(&flagStage, "stage", "", "Share code or saved stage name to open in the editor")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagGame) {
		return fmt.Errorf("unknown game %q, run 'blockbreak list' to see the variants", flagGame)
	}

	logger, closeLog, err := newLogger(flagLogPath, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if flagStage != "" {
		code, err := resolveStage(store, flagStage)
		if err != nil {
			return err
		}
		blockbreak.SetStartStage(code)
	}

	game, err := registry.Create(flagGame)
	if err != nil {
		return err
	}
	sink := openAudio(cmd, logger)
	defer sink.Close()

	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Sink:   sink,
		Logger: logger,
	})
}

// resolveStage accepts a share code, or the name of a stage saved in store.
func resolveStage(store *storage.Store, arg string) (string, error) {
	if _, err := blockbreak.DecodeStage(arg); err == nil {
		return arg, nil
	}
	if store == nil {
		return "", fmt.Errorf("%q is not a valid share code", arg)
	}
	code, err := store.LoadStage(arg)
	if errors.Is(err, storage.ErrStageNotFound) {
		return "", fmt.Errorf("%q is neither a share code nor a saved stage", arg)
	}
	return code, err
}
