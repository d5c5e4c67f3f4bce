package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow: move paddle or cursor left
	ActionRight             // D, Right arrow: move paddle or cursor right
	ActionUp                // W, Up arrow: editor cursor up
	ActionDown              // S, Down arrow: editor cursor down
	ActionConfirm           // Enter, Space: start, resume, next level, paint
	ActionBack              // Esc, B: leave the current screen
	ActionPause             // P: toggle pause
	ActionRestart           // R: back to menu after game over
	ActionQuit              // Q, Ctrl+C
	ActionEditor            // E: open the stage editor from the menu
	ActionNextTool          // Tab: cycle the editor brush
	ActionErase             // X, Backspace: erase the cell under the cursor
	ActionTestPlay          // T: play the stage being edited
	ActionShare             // C: encode the stage as a share code
	ActionClearStage        // Ctrl+X: wipe the editor grid
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionPause:      "Pause",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
	ActionEditor:     "Editor",
	ActionNextTool:   "NextTool",
	ActionErase:      "Erase",
	ActionTestPlay:   "TestPlay",
	ActionShare:      "Share",
	ActionClearStage: "ClearStage",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the input for one simulation tick. Movement actions mean
// "held during this tick"; everything else is an edge-triggered press.
type InputFrame struct {
	Actions map[Action]bool

	// Pointer is the horizontal pointer position as a fraction of the
	// playfield width, valid when HasPointer is set.
	Pointer    float64
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetPointer records an absolute pointer position, clamped to [0, 1].
func (f *InputFrame) SetPointer(frac float64) {
	f.Pointer = ClampF(frac, 0, 1)
	f.HasPointer = true
}

// Horizontal returns -1, 0 or +1 from the held Left/Right actions.
func (f InputFrame) Horizontal() float64 {
	var dir float64
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Pointer = 0
	f.HasPointer = false
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	c.Pointer, c.HasPointer = f.Pointer, f.HasPointer
	return c
}
