package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

// MenuItem is one launcher entry. Items without a GameID open the
// scoreboard or quit.
type MenuItem struct {
	GameID string
	Title  string
	kind   menuItemKind
}

type menuItemKind int

const (
	itemGame menuItemKind = iota
	itemScores
	itemQuit
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenScores
	screenGame
)

// LauncherModel is the top-level model: a game picker that runs the chosen
// game, the scoreboard, and back again inside one program.
type LauncherModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	opts   Options
	keys   *KeyMapper

	screen     screenKind
	game       *Model
	scoreboard *ScoreboardModel

	games    int // games started, used as tick generation
	quitting bool
}

// NewLauncherModel creates the launcher. opts apply to every game it starts.
func NewLauncherModel(cfg core.RuntimeConfig, opts Options) *LauncherModel {
	var items []MenuItem
	for _, g := range registry.List() {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, kind: itemGame})
	}
	items = append(items,
		MenuItem{Title: "High scores & stages", kind: itemScores},
		MenuItem{Title: "Quit", kind: itemQuit},
	)
	opts.Embedded = true
	if opts.Player == "" {
		opts.Player = defaultPlayer()
	}
	return &LauncherModel{
		items:  items,
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m *LauncherModel) Init() tea.Cmd { return nil }

// Update routes messages to the active screen.
func (m *LauncherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = size.Width
		m.config.ScreenH = size.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleMenuKey(key)
	}
	return m, nil
}

func (m *LauncherModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
	case MenuActionSelect:
		return m.activate(m.items[m.cursor])
	}
	return m, nil
}

func (m *LauncherModel) activate(item MenuItem) (tea.Model, tea.Cmd) {
	switch item.kind {
	case itemQuit:
		m.quitting = true
		return m, tea.Quit
	case itemScores:
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Logger, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, nil
	}
	return m.startGame(item.GameID, "")
}

// startGame swaps the launcher for a fresh game, optionally with a stage.
func (m *LauncherModel) startGame(id, stage string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("starting game", "game", id, "error", err)
		}
		return m, nil
	}
	opts := m.opts
	opts.Stage = stage
	m.games++
	m.game = NewModel(game, m.config, opts)
	m.game.gen = m.games
	m.screen = screenGame
	return m, m.game.Init()
}

func (m *LauncherModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.game.Update(msg)
	switch {
	case m.game.Quitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		m.screen = screenMenu
		// the pending tick is dropped by the menu
		return m, nil
	}
	return m, cmd
}

func (m *LauncherModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	_, cmd := m.scoreboard.Update(msg)
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		code := m.scoreboard.OpenStage()
		m.scoreboard = nil
		m.screen = screenMenu
		if code != "" {
			return m.startGame("editor", code)
		}
		return m, nil
	}
	return m, cmd
}

// View renders the active screen.
func (m *LauncherModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menuView()
}

func (m *LauncherModel) menuView() string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(title.Render("B L O C K   B R E A K E R"), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(dim.Render(m.opts.Player), m.config.ScreenW))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = active.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.config.ScreenW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dim.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.config.ScreenW))
	b.WriteString("\n")
	return b.String()
}

// stageBlocks describes a share code by its block count.
func stageBlocks(code string) string {
	s, err := blockbreak.DecodeStage(code)
	if err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%d", s.Count())
}

// RunLauncher runs the launcher in the alternate screen until the user quits.
func RunLauncher(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewLauncherModel(cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
