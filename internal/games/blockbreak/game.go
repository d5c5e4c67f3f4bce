package blockbreak

import (
	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

// Mode is the top-level game state.
type Mode uint8

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
	ModeLevelClear
	ModeEditor
	ModeTestPlay
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "gameover"
	case ModeLevelClear:
		return "levelclear"
	case ModeEditor:
		return "editor"
	case ModeTestPlay:
		return "testplay"
	default:
		return "unknown"
	}
}

// Simulating reports whether the world advances in this mode.
func (m Mode) Simulating() bool {
	return m == ModePlaying || m == ModeTestPlay
}

// Session is one run from the menu to game over.
type Session struct {
	Score     int
	Level     int
	LastLevel LevelStats // stats of the most recently cleared level
}

// package-level options set from the command line before Reset
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startStage       string
)

// SetConfigPath sets a custom config file for Reset to load.
func SetConfigPath(path string) { configPath = path }

// SetDifficultyPreset selects a preset by name. Unknown names select none.
func SetDifficultyPreset(name string) {
	if p, ok := config.ParsePreset(name); ok && name != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetStartStage makes Reset open the editor with a share code loaded.
func SetStartStage(code string) { startStage = code }

// Game is the block breaker state machine. It owns the session, the current
// world and the editor, and turns input frames into mode transitions.
type Game struct {
	id        string
	startMode Mode

	runtime core.RuntimeConfig
	cfg     config.BlockbreakConfig
	prog    *config.Progression

	mode    Mode
	session Session
	world   *World
	editor  *Editor
	tick    uint64
	events  []Event
}

// New creates a game that starts at the menu.
func New() *Game {
	return &Game{id: "blockbreak", startMode: ModeMenu}
}

// NewEditorGame creates a game that opens straight into the stage editor.
func NewEditorGame() *Game {
	return &Game{id: "editor", startMode: ModeEditor}
}

// NewWithConfig creates a menu-first game with an explicit configuration,
// bypassing the file search. Used by tests and tools.
func NewWithConfig(cfg config.BlockbreakConfig, runtime core.RuntimeConfig) *Game {
	g := New()
	g.resetWith(cfg, runtime)
	return g
}

func (g *Game) ID() string { return g.id }

func (g *Game) Title() string {
	if g.startMode == ModeEditor {
		return "Block Breaker: Stage Editor"
	}
	return "Block Breaker"
}

// Reset loads the configuration and returns to the start mode.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBlockbreak(configPath)
	if err != nil {
		cfg = config.DefaultBlockbreakConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.resetWith(cfg, runtime)
}

func (g *Game) resetWith(cfg config.BlockbreakConfig, runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.prog = config.NewProgression(cfg.Progression)
	g.session = Session{}
	g.world = nil
	g.editor = NewEditor()
	g.tick = 0
	g.events = nil
	g.mode = g.startMode

	if startStage != "" {
		_ = g.editor.Load(startStage) // a bad code leaves an empty grid and a status line
		g.mode = ModeEditor
	}
}

// Step advances one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = g.events[:0]
	dt := g.runtime.DT()

	switch g.mode {
	case ModeMenu:
		switch {
		case in.Has(core.ActionConfirm):
			g.startSession()
		case in.Has(core.ActionEditor):
			g.mode = ModeEditor
		}

	case ModePlaying:
		switch {
		case in.Has(core.ActionRestart):
			g.toMenu()
		case in.Has(core.ActionPause):
			g.mode = ModePaused
		default:
			g.advance(in, dt)
		}

	case ModePaused:
		switch {
		case in.Has(core.ActionPause), in.Has(core.ActionConfirm):
			g.mode = ModePlaying
		case in.Has(core.ActionBack), in.Has(core.ActionRestart):
			g.toMenu()
		}

	case ModeLevelClear:
		switch {
		case in.Has(core.ActionConfirm):
			g.loadLevel(g.session.Level + 1)
			g.mode = ModePlaying
		case in.Has(core.ActionRestart), in.Has(core.ActionBack):
			g.toMenu()
		}

	case ModeGameOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || in.Has(core.ActionBack) {
			g.toMenu()
		}

	case ModeEditor:
		g.stepEditor(in, dt)

	case ModeTestPlay:
		if in.Has(core.ActionBack) || in.Has(core.ActionRestart) {
			g.endTestPlay("test play stopped")
			break
		}
		g.advance(in, dt)
	}

	return core.StepResult{State: g.State(), Sounds: Sounds(g.events)}
}

func (g *Game) startSession() {
	g.session = Session{}
	g.loadLevel(1)
	g.mode = ModePlaying
}

func (g *Game) toMenu() {
	g.session = Session{}
	g.world = nil
	g.mode = ModeMenu
}

// loadLevel builds a fresh world: new layout, new ball, base paddle, no
// effects or combo. The level speed multiplier is applied here.
func (g *Game) loadLevel(level int) {
	g.session.Level = level
	stage := GenerateLevel(level, g.runtime.Seed, g.prog)
	g.world = NewWorld(g.cfg, stage, level, g.prog.SpeedMultiplier(level), g.runtime.Seed+int64(level))
}

// advance runs the world one tick and applies the outcome. A clear beats a
// loss that happens on the same tick.
func (g *Game) advance(in core.InputFrame, dt float64) {
	rep := g.world.Tick(in, dt)
	g.events = append(g.events, rep.Events...)

	if g.mode == ModeTestPlay {
		switch {
		case rep.Cleared:
			g.events = append(g.events, Event{Kind: EventLevelClear})
			g.endTestPlay("stage cleared")
		case rep.Lost:
			g.events = append(g.events, Event{Kind: EventGameOver})
			g.endTestPlay("ball lost")
		}
		return
	}

	g.session.Score += rep.ScoreGained
	switch {
	case rep.Cleared:
		g.session.LastLevel = g.world.Stats
		g.events = append(g.events, Event{Kind: EventLevelClear})
		g.mode = ModeLevelClear
	case rep.Lost:
		g.events = append(g.events, Event{Kind: EventGameOver})
		g.mode = ModeGameOver
	}
}

func (g *Game) stepEditor(in core.InputFrame, dt float64) {
	e := g.editor
	e.Tick(dt)

	switch {
	case in.Has(core.ActionBack):
		g.mode = ModeMenu
		return
	case in.Has(core.ActionTestPlay):
		g.startTestPlay()
		return
	}

	var dr, dc int
	if in.Has(core.ActionUp) {
		dr--
	}
	if in.Has(core.ActionDown) {
		dr++
	}
	if in.Has(core.ActionLeft) {
		dc--
	}
	if in.Has(core.ActionRight) {
		dc++
	}
	if dr != 0 || dc != 0 {
		e.MoveCursor(dr, dc)
	}

	switch {
	case in.Has(core.ActionNextTool):
		e.NextTool()
	case in.Has(core.ActionConfirm):
		e.Paint()
	case in.Has(core.ActionErase):
		e.Erase()
	case in.Has(core.ActionClearStage):
		e.ClearAll()
	case in.Has(core.ActionShare):
		e.Share()
	}
}

// startTestPlay runs the edited layout at level 1 speed. The editor grid is
// copied, so play never changes it.
func (g *Game) startTestPlay() {
	if !g.editor.Stage.Clearable() {
		g.editor.SetStatus("add a breakable block first")
		return
	}
	g.world = NewWorld(g.cfg, g.editor.Stage, 1, 1, g.runtime.Seed)
	g.mode = ModeTestPlay
}

func (g *Game) endTestPlay(status string) {
	g.world = nil
	g.editor.SetStatus(status)
	g.mode = ModeEditor
}

// LoadStage loads a share code into the editor and switches to it.
func (g *Game) LoadStage(code string) error {
	g.mode = ModeEditor
	g.world = nil
	return g.editor.Load(code)
}

// State reports the platform-facing state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score,
		Level:    g.session.Level,
		GameOver: g.mode == ModeGameOver,
		Paused:   g.mode == ModePaused,
		Mode:     g.mode.String(),
	}
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.mode }

// Session returns the current session.
func (g *Game) Session() Session { return g.session }

// World returns the running world, or nil outside play.
func (g *Game) World() *World { return g.world }

// Editor returns the stage editor.
func (g *Game) Editor() *Editor { return g.editor }

// Events returns the events of the last tick.
func (g *Game) Events() []Event { return g.events }

// Config returns the active configuration.
func (g *Game) Config() config.BlockbreakConfig { return g.cfg }

func init() {
	registry.Register("blockbreak", func() registry.Game { return New() })
	registry.Register("editor", func() registry.Game { return NewEditorGame() })
}
