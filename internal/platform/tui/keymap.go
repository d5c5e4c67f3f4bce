package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key to an action. isQuit is set for the global quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "esc", "b":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "e":
		return core.ActionEditor, false
	case "tab":
		return core.ActionNextTool, false
	case "x", "backspace", "delete":
		return core.ActionErase, false
	case "t":
		return core.ActionTestPlay, false
	case "c":
		return core.ActionShare, false
	case "ctrl+x":
		return core.ActionClearStage, false
	}
	return core.ActionNone, false
}

// MenuAction is a launcher or scoreboard action.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// heldKeys turns key presses into held paddle movement. Terminals report
// presses and auto-repeats but never releases, so each press holds its
// direction for a short window and a repeat extends it.
type heldKeys struct {
	window      int
	left, right int
}

func newHeldKeys(tickRate int) heldKeys {
	return heldKeys{window: max(1, tickRate/4)}
}

// press starts or extends a hold. The opposite direction is released.
func (h *heldKeys) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left, h.right = h.window, 0
	case core.ActionRight:
		h.right, h.left = h.window, 0
	}
}

// apply marks the held directions on frame and ages the holds by one tick.
func (h *heldKeys) apply(frame *core.InputFrame) {
	if h.left > 0 {
		frame.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		frame.Set(core.ActionRight)
		h.right--
	}
}

func (h *heldKeys) release() {
	h.left, h.right = 0, 0
}
