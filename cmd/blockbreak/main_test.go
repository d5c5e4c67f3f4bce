package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// execute runs the root command against a throwaway database.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append(args, "--db", db))
	err := rootCmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "scores.db")
}

var layout = []string{
	"##########",
	"#X*....*X#",
	"DDDDHHHHDD",
}

func TestStageEncodeDecode(t *testing.T) {
	db := tempDB(t)
	path := filepath.Join(t.TempDir(), "layout.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(layout, "\n")+"\n\n"), 0o600))

	out, err := execute(t, db, "stage", "encode", path)
	require.NoError(t, err)
	code := strings.TrimSpace(out)
	assert.Len(t, code, 51)

	out, err = execute(t, db, "stage", "decode", code)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, blockbreak.StageRows)
	assert.Equal(t, layout, lines[:3])
	assert.Equal(t, "..........", lines[3])
}

func TestStageDecodeRejectsGarbage(t *testing.T) {
	_, err := execute(t, tempDB(t), "stage", "decode", "not-a-stage")
	assert.ErrorIs(t, err, blockbreak.ErrInvalidStage)
}

func TestStageLibrary(t *testing.T) {
	db := tempDB(t)
	code := blockbreak.MustParseStage(layout...).Encode()

	out, err := execute(t, db, "stage", "save", "castle", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved castle")

	out, err = execute(t, db, "stage", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "castle")
	assert.Contains(t, out, code)

	out, err = execute(t, db, "stage", "show", "castle")
	require.NoError(t, err)
	assert.Contains(t, out, "|#X*....*X#|")
	assert.Contains(t, out, "explosive")

	file := filepath.Join(t.TempDir(), "castle.yaml")
	_, err = execute(t, db, "stage", "export", "castle", file)
	require.NoError(t, err)

	_, err = execute(t, db, "stage", "import", file, "--name", "copy")
	require.NoError(t, err)

	store, err := storage.Open(db)
	require.NoError(t, err)
	got, err := store.LoadStage("copy")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Equal(t, code, got)

	_, err = execute(t, db, "stage", "delete", "castle")
	require.NoError(t, err)
	_, err = execute(t, db, "stage", "show", "castle")
	assert.Error(t, err)
}

func TestResolveStage(t *testing.T) {
	store, err := storage.Open(tempDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	code := blockbreak.MustParseStage("#").Encode()
	require.NoError(t, store.SaveStage("one", code))

	got, err := resolveStage(store, code)
	require.NoError(t, err)
	assert.Equal(t, code, got)

	got, err = resolveStage(store, "one")
	require.NoError(t, err)
	assert.Equal(t, code, got)

	_, err = resolveStage(store, "missing")
	assert.Error(t, err)
	_, err = resolveStage(nil, "missing")
	assert.Error(t, err)
}

func TestPrintStageWarnsWhenUnclearable(t *testing.T) {
	var out bytes.Buffer
	printStage(&out, blockbreak.MustParseStage("XXXX"))
	assert.Contains(t, out.String(), "steel      4")
	assert.Contains(t, out.String(), "never be cleared")
}

func TestLevelsPrintsAuthoredLevels(t *testing.T) {
	out, err := execute(t, tempDB(t), "levels", "--from", "1", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Level 1: Classic")
	assert.Contains(t, out, "Level 2: Diamond")
	assert.NotContains(t, out, "Level 3")
}

func TestLevelsNotesFixedSpeed(t *testing.T) {
	out, err := execute(t, tempDB(t), "levels", "--count", "1", "--difficulty", "fixed")
	require.NoError(t, err)
	assert.Contains(t, out, "does not scale")

	out, err = execute(t, tempDB(t), "levels", "--count", "1", "--difficulty", "")
	require.NoError(t, err)
	assert.NotContains(t, out, "does not scale")
}

func TestConfigShowRoundTrips(t *testing.T) {
	out, err := execute(t, tempDB(t), "config", "show", "--difficulty", "hard")
	require.NoError(t, err)
	assert.Contains(t, out, "arena:")

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	want, err := config.LoadBlockbreak("")
	require.NoError(t, err)
	config.ApplyPreset(&want, config.DifficultyHard)
	assert.InDelta(t, want.Ball.Speed, cfg.Ball.Speed, 1e-9)
	assert.InDelta(t, want.Paddle.Width, cfg.Paddle.Width, 1e-9)

	_, err = execute(t, tempDB(t), "config", "show", "--difficulty", "")
	require.NoError(t, err)
}

func TestUnknownDifficulty(t *testing.T) {
	_, err := execute(t, tempDB(t), "levels", "--difficulty", "brutal")
	assert.ErrorContains(t, err, "unknown difficulty")
	_, err = execute(t, tempDB(t), "levels", "--difficulty", "")
	require.NoError(t, err)
}

func TestScoresCommand(t *testing.T) {
	db := tempDB(t)
	store, err := storage.Open(db)
	require.NoError(t, err)
	_, err = store.SaveScore("blockbreak", "ada", 420, 3)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := execute(t, db, "scores", "--clear=false")
	require.NoError(t, err)
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "420")
	assert.Contains(t, out, "Best: 420")

	_, err = execute(t, db, "scores", "nope")
	assert.Error(t, err)
}
