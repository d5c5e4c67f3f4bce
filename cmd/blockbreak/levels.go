package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
)

var (
	flagLevelFrom  int
	flagLevelCount int
	flagShowCodes  bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the generated level layouts",
	Long: `Print the layouts a run would play, with the ball speed of each level.
Levels 1-3 are fixed; later levels depend on --seed.

Examples:
  blockbreak levels
  blockbreak levels --from 4 --count 3 --seed 42
  blockbreak levels --codes`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelFrom, "from", 1, "First level")
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 5, "Number of levels")
	levelsCmd.Flags().BoolVar(&flagShowCodes, "codes", false, "Print share codes under each layout")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	if flagLevelFrom < 1 || flagLevelCount < 1 {
		return fmt.Errorf("--from and --count must be at least 1")
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	prog := config.NewProgression(cfg.Progression)

	out := cmd.OutOrStdout()
	if !prog.Enabled() {
		fmt.Fprintln(out, "Ball speed does not scale with the level.")
		fmt.Fprintln(out)
	}
	for level := flagLevelFrom; level < flagLevelFrom+flagLevelCount; level++ {
		s := blockbreak.GenerateLevel(level, flagSeed, prog)
		speed := cfg.Ball.Speed * prog.SpeedMultiplier(level)
		fmt.Fprintf(out, "Level %d: %s  (%d blocks, ball %.0f u/s)\n",
			level, blockbreak.LevelName(level), s.Count(), speed)
		printStage(out, s)
		if flagShowCodes {
			fmt.Fprintln(out, s.Encode())
		}
		fmt.Fprintln(out)
	}
	return nil
}
