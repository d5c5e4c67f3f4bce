package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

const (
	maxScores     = 100
	stagesTabName = "Saved stages"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Open    key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Open, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Open, k.Delete, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev tab")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit stage")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete stage")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one page of the scoreboard: a game's scores, or the saved
// stages when gameID is empty.
type scoreTab struct {
	gameID string
	title  string
}

func (t scoreTab) stages() bool { return t.gameID == "" }

// ScoreboardModel shows the high scores of every game and the saved stages.
type ScoreboardModel struct {
	tabs   []scoreTab
	tab    int
	store  *storage.Store
	logger *log.Logger

	scores []storage.ScoreEntry
	stages []storage.StageEntry

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
	openStage string // code picked with Open
}

// NewScoreboardModel creates a scoreboard over store.
func NewScoreboardModel(store *storage.Store, logger *log.Logger, width, height int) *ScoreboardModel {
	if logger == nil {
		logger = log.Default()
	}
	var tabs []scoreTab
	for _, g := range registry.List() {
		tabs = append(tabs, scoreTab{gameID: g.ID, title: g.Title})
	}
	tabs = append(tabs, scoreTab{title: stagesTabName})

	h := help.New()
	h.Width = width
	m := &ScoreboardModel{
		tabs:   tabs,
		store:  store,
		logger: logger,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) current() scoreTab { return m.tabs[m.tab] }

func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.current().stages() {
		columns = []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Blocks", Width: 7},
			{Title: "Saved", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 9},
			{Title: "Level", Width: 6},
			{Title: "Date", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload rebuilds the table for the current tab from the store.
func (m *ScoreboardModel) reload() {
	m.table = m.createTable()
	m.scores, m.stages = nil, nil
	if m.store == nil {
		return
	}

	var rows []table.Row
	if m.current().stages() {
		stages, err := m.store.ListStages()
		if err != nil {
			m.logger.Error("listing stages", "error", err)
		}
		m.stages = stages
		for _, st := range stages {
			rows = append(rows, table.Row{st.Name, stageBlocks(st.Code), st.UpdatedAt.Format("Jan 02 15:04")})
		}
	} else {
		scores, err := m.store.TopScores(m.current().gameID, maxScores)
		if err != nil {
			m.logger.Error("loading scores", "game", m.current().gameID, "error", err)
		}
		m.scores = scores
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Player,
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Level),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m *ScoreboardModel) Init() tea.Cmd { return nil }

// Update handles messages for the scoreboard.
func (m *ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			if st, ok := m.selectedStage(); ok {
				m.openStage = st.Code
				m.goingBack = true
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if st, ok := m.selectedStage(); ok && m.store != nil {
				if err := m.store.DeleteStage(st.Name); err != nil {
					m.logger.Error("deleting stage", "name", st.Name, "error", err)
				}
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) selectedStage() (storage.StageEntry, bool) {
	if !m.current().stages() || len(m.stages) == 0 {
		return storage.StageEntry{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.stages) {
		return storage.StageEntry{}, false
	}
	return m.stages[i], true
}

// View renders the scoreboard.
func (m *ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES & STAGES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(t.title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.current().title)
	}
	return line
}

func (m *ScoreboardModel) renderTableContent() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("No score database open.")
	case m.current().stages() && len(m.stages) == 0:
		return empty.Render("No saved stages.\nUse `blockbreak stage save` to add one.")
	case !m.current().stages() && len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// centerText pads text to sit in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// IsGoingBack reports whether the user left for the launcher.
func (m *ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to exit.
func (m *ScoreboardModel) IsQuitting() bool { return m.quitting }

// OpenStage returns the share code picked from the stages tab, if any.
func (m *ScoreboardModel) OpenStage() string { return m.openStage }
