package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

var flagImportName string

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Work with stage layouts and share codes",
	Long: `Convert between ASCII layouts, YAML stage files and share codes, and
manage the stages saved in the database.

Layout glyphs:
  .  empty     #  normal     D  durable (2 hits)
  H  durable (3 hits)        X  steel   *  explosive

Examples:
  blockbreak stage encode layout.txt
  blockbreak stage decode Af8A...
  blockbreak stage save fortress Af8A...
  blockbreak stage export fortress fortress.yaml
  blockbreak stage import fortress.yaml --name castle`,
}

func init() {
	stageImportCmd.Flags().StringVar(&flagImportName, "name", "", "Save under this name instead of the file's")

	stageCmd.AddCommand(
		stageEncodeCmd,
		stageDecodeCmd,
		stageShowCmd,
		stageSaveCmd,
		stageListCmd,
		stageExportCmd,
		stageImportCmd,
		stageDeleteCmd,
	)
}

var stageEncodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Print the share code of an ASCII layout or YAML stage file (stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		_, s, err := readStageInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Encode())
		return nil
	},
}

var stageDecodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Print the ASCII layout of a share code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := blockbreak.DecodeStage(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.String())
		return nil
	},
}

var stageShowCmd = &cobra.Command{
	Use:   "show <code|name>",
	Short: "Preview a share code or saved stage with its block counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := storage.Open(flagDBPath)
		if store != nil {
			defer store.Close()
		}
		code, err := resolveStage(store, args[0])
		if err != nil {
			return err
		}
		s, err := blockbreak.DecodeStage(code)
		if err != nil {
			return err
		}
		printStage(cmd.OutOrStdout(), s)
		return nil
	},
}

var stageSaveCmd = &cobra.Command{
	Use:   "save <name> <code|file>",
	Short: "Save a stage under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, src := args[0], args[1]
		s, err := blockbreak.DecodeStage(src)
		if err != nil {
			if _, statErr := os.Stat(src); statErr != nil {
				return err
			}
			if _, s, err = readStageInput(cmd.InOrStdin(), src); err != nil {
				return err
			}
		}
		return saveStage(cmd.OutOrStdout(), name, s)
	},
}

var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		stages, err := store.ListStages()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(stages) == 0 {
			fmt.Fprintln(out, "No saved stages.")
			return nil
		}
		for _, st := range stages {
			fmt.Fprintf(out, "%-20s  %s  %s\n", st.Name, st.Code, st.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var stageExportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Write a saved stage as YAML (stdout when no file is given)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		code, err := store.LoadStage(args[0])
		if err != nil {
			return err
		}
		s, err := blockbreak.DecodeStage(code)
		if err != nil {
			return fmt.Errorf("saved stage %q: %w", args[0], err)
		}
		data, err := blockbreak.MarshalStageFile(args[0], s)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(args[1], data, 0o644)
	},
}

var stageImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a YAML stage file under its name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, s, err := readStageInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		if flagImportName != "" {
			name = flagImportName
		}
		if name == "" {
			return fmt.Errorf("%s has no name, pass --name", args[0])
		}
		return saveStage(cmd.OutOrStdout(), name, s)
	},
}

var stageDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteStage(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
		return nil
	},
}

func saveStage(out io.Writer, name string, s blockbreak.Stage) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	code := s.Encode()
	if err := store.SaveStage(name, code); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s: %s\n", name, code)
	return nil
}

// readStageInput reads a stage from path, or from stdin for "-". YAML files
// are recognised by extension; anything else is an ASCII layout.
func readStageInput(stdin io.Reader, path string) (string, blockbreak.Stage, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", blockbreak.Stage{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return blockbreak.UnmarshalStageFile(data)
	}

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \r"))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	s, err := blockbreak.ParseStage(lines)
	return "", s, err
}

// printStage draws a framed layout followed by a count per block kind.
func printStage(out io.Writer, s blockbreak.Stage) {
	border := "+" + strings.Repeat("-", blockbreak.StageCols) + "+"
	fmt.Fprintln(out, border)
	for _, line := range s.Lines() {
		fmt.Fprintf(out, "|%s|\n", line)
	}
	fmt.Fprintln(out, border)

	counts := map[blockbreak.Cell]int{}
	for row := range blockbreak.StageRows {
		for col := range blockbreak.StageCols {
			if c := s.At(row, col); c != blockbreak.CellEmpty {
				counts[c]++
			}
		}
	}
	for c := blockbreak.CellEmpty + 1; c.Valid(); c++ {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(out, "%-10s %d\n", c.String(), n)
		}
	}
	fmt.Fprintf(out, "%-10s %d\n", "total", s.Count())
	if !s.Clearable() {
		fmt.Fprintln(out, "warning: no breakable blocks, the stage can never be cleared")
	}
}
