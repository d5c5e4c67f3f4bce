package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbreak/internal/audio"
	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// stageLoader is implemented by games that accept a share code.
type stageLoader interface {
	LoadStage(code string) error
}

// Options configure a game model.
type Options struct {
	Store  *storage.Store
	Sink   audio.Sink
	Player string // name stored with scores
	Logger *log.Logger

	// Stage is a share code opened in the editor once the game starts.
	Stage string

	// Embedded models hand control back to the launcher instead of quitting.
	Embedded bool
}

// Model is the Bubble Tea model for one running game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	opts   Options
	config core.RuntimeConfig

	keys       *KeyMapper
	held       heldKeys
	inputFrame core.InputFrame
	gameState  core.GameState

	quitting   bool
	backToMenu bool
	scoreSaved bool // score already stored for the current game over

	gen int // tick generation, see TickMsg
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) *Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Sink == nil {
		opts.Sink = audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Player == "" {
		opts.Player = defaultPlayer()
	}
	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       newHeldKeys(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
	}
}

// start resets the game and loads the optional stage.
func (m *Model) start() {
	m.game.Reset(m.config)
	if m.opts.Stage != "" {
		if l, ok := m.game.(stageLoader); ok {
			if err := l.LoadStage(m.opts.Stage); err != nil {
				m.opts.Logger.Warn("stage not loaded", "error", err)
			}
		}
	}
	m.gameState = m.game.State()
}

// Init starts the game and the tick loop.
func (m *Model) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m *Model) simulating() bool {
	return m.gameState.Mode == "playing" || m.gameState.Mode == "testplay"
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && m.gameState.Mode == "menu" && m.opts.Embedded {
		m.backToMenu = true
		return m, nil
	}

	if m.simulating() && (action == core.ActionLeft || action == core.ActionRight) {
		m.held.press(action)
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.simulating() || m.screen.Width() <= 0 {
		return
	}
	m.held.release()
	// centre of the column under the cursor
	m.inputFrame.SetPointer((float64(msg.X) + 0.5) / float64(m.screen.Width()))
}

// handleResize only resizes the buffer. The world is in arena units, so a
// running game carries on unchanged.
func (m *Model) handleResize(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.simulating() {
		m.held.apply(&m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.opts.Sink.Play(result.Sounds...)

	if !m.simulating() {
		m.held.release()
	}
	m.saveScoreOnce()
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScoreOnce stores the score the first tick a game is over.
func (m *Model) saveScoreOnce() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.Player, m.gameState.Score, m.gameState.Level)
	if err != nil {
		m.opts.Logger.Error("saving score", "game", m.game.ID(), "error", err)
		return
	}
	m.opts.Logger.Info("score saved", "game", m.game.ID(), "player", m.opts.Player,
		"score", m.gameState.Score, "level", m.gameState.Level)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockbreak", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the user asked to exit.
func (m *Model) Quitting() bool { return m.quitting }

// BackToMenu reports whether an embedded game asked for the launcher.
func (m *Model) BackToMenu() bool { return m.backToMenu }

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// Run plays one game in the alternate screen until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
