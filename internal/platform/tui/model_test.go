package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// fakeGame records its input and reports whatever state the test sets.
type fakeGame struct {
	state  core.GameState
	sounds []core.Sound
	inputs []core.InputFrame
	resets int
	stage  string
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) LoadStage(code string) error { g.stage = code; return nil }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state, Sounds: g.sounds}
}

func (g *fakeGame) lastInput() core.InputFrame { return g.inputs[len(g.inputs)-1] }

type recordingSink struct{ played []core.Sound }

func (s *recordingSink) Play(sounds ...core.Sound) { s.played = append(s.played, sounds...) }
func (s *recordingSink) Close() {}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func testCfg() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1}
}

func newTestModel(t *testing.T, g *fakeGame, opts Options) *Model {
	t.Helper()
	m := NewModel(g, testCfg(), opts)
	require.NotNil(t, m.Init())
	return m
}

func tick(m *Model) {
	m.Update(TickMsg{Gen: m.gen})
}

func TestModelInitResetsAndLoadsStage(t *testing.T) {
	g := &fakeGame{}
	newTestModel(t, g, Options{Stage: "abc"})
	assert.Equal(t, 1, g.resets)
	assert.Equal(t, "abc", g.stage)
}

func TestModelEdgeActionsLastOneTick(t *testing.T) {
	g := &fakeGame{state: core.GameState{Mode: "menu"}}
	m := newTestModel(t, g, Options{})

	m.Update(keyMsg("enter"))
	tick(m)
	assert.True(t, g.lastInput().Has(core.ActionConfirm))

	tick(m)
	assert.False(t, g.lastInput().Has(core.ActionConfirm))
}

func TestModelHoldsPaddleKeysWhilePlaying(t *testing.T) {
	g := &fakeGame{state: core.GameState{Mode: "playing"}}
	m := newTestModel(t, g, Options{})
	tick(m)

	m.Update(keyMsg("left"))
	window := newHeldKeys(60).window
	for i := 0; i < window; i++ {
		tick(m)
		require.True(t, g.lastInput().Has(core.ActionLeft), "tick %d", i)
	}
	tick(m)
	assert.False(t, g.lastInput().Has(core.ActionLeft))

	m.Update(keyMsg("left"))
	m.Update(keyMsg("right"))
	tick(m)
	assert.Equal(t, 1.0, g.lastInput().Horizontal(), "the newest direction wins")
}

func TestModelMouseSetsPointerWhilePlaying(t *testing.T) {
	g := &fakeGame{state: core.GameState{Mode: "playing"}}
	m := newTestModel(t, g, Options{})
	tick(m)

	m.Update(tea.MouseMsg{X: 79, Y: 10, Action: tea.MouseActionMotion})
	tick(m)
	in := g.lastInput()
	assert.True(t, in.HasPointer)
	assert.InDelta(t, 79.5/80, in.Pointer, 1e-9)

	m.Update(tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionMotion})
	tick(m)
	assert.InDelta(t, 20.5/80, g.lastInput().Pointer, 1e-9, "column centre of the full width")

	g.state.Mode = "paused"
	tick(m)
	m.Update(tea.MouseMsg{X: 0, Y: 10, Action: tea.MouseActionMotion})
	tick(m)
	assert.False(t, g.lastInput().HasPointer)
}

func TestModelForwardsSounds(t *testing.T) {
	sink := &recordingSink{}
	g := &fakeGame{sounds: []core.Sound{core.SoundBounce, core.SoundBreak}}
	m := newTestModel(t, g, Options{Sink: sink})
	tick(m)
	assert.Equal(t, []core.Sound{core.SoundBounce, core.SoundBreak}, sink.played)
}

func TestModelDropsStaleTicks(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})
	m.Update(TickMsg{Gen: m.gen + 1})
	assert.Empty(t, g.inputs)
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	g := &fakeGame{state: core.GameState{Mode: "playing", Score: 120, Level: 3}}
	m := newTestModel(t, g, Options{Store: store, Player: "ada"})
	tick(m)

	g.state.GameOver, g.state.Mode = true, "gameover"
	tick(m)
	tick(m)

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ada", scores[0].Player)
	assert.Equal(t, 120, scores[0].Score)
	assert.Equal(t, 3, scores[0].Level)

	// a second game over after playing again is a new run
	g.state = core.GameState{Mode: "playing", Score: 40, Level: 1}
	tick(m)
	g.state.GameOver, g.state.Mode = true, "gameover"
	tick(m)

	scores, err = store.TopScores("fake", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestModelSkipsZeroScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	g := &fakeGame{state: core.GameState{Mode: "gameover", GameOver: true}}
	m := newTestModel(t, g, Options{Store: store})
	tick(m)

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelBackFromMenuWhenEmbedded(t *testing.T) {
	g := &fakeGame{state: core.GameState{Mode: "menu"}}
	m := newTestModel(t, g, Options{Embedded: true})
	m.Update(keyMsg("esc"))
	assert.True(t, m.BackToMenu())

	standalone := newTestModel(t, &fakeGame{state: core.GameState{Mode: "menu"}}, Options{})
	standalone.Update(keyMsg("esc"))
	assert.False(t, standalone.BackToMenu())
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, Options{})
	_, cmd := m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{state: core.GameState{Mode: "playing"}}
	m := newTestModel(t, g, Options{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 1, g.resets)
	assert.Equal(t, 120, m.screen.Width())
	assert.Contains(t, m.View(), "fake")
}
