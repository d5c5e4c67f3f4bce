package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockbreak/internal/audio"
	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// newLogger builds the command logger. Full-screen commands own the
// terminal, so without --log they log nowhere.
func newLogger(path string, fullScreen bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case fullScreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbreak",
	})
	return logger, closer, nil
}

// openStore opens the database, or logs and returns nil: games run
// without scores rather than not at all.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func openAudio(cmd *cobra.Command, logger *log.Logger) audio.Sink {
	mute, _ := cmd.Flags().GetBool("mute")
	volume, _ := cmd.Flags().GetFloat64("volume")
	return audio.Open(mute, core.ClampF(volume, 0, 1), logger)
}

// runtimeConfig sizes the screen from the terminal, keeping the default
// size when stdout is not one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// loadGameConfig loads the game configuration with --config and
// --difficulty applied, the same way a game started from this run sees it.
func loadGameConfig() (config.BlockbreakConfig, error) {
	cfg, err := config.LoadBlockbreak(flagConfig)
	if err != nil {
		return config.BlockbreakConfig{}, err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
