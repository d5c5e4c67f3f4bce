package blockbreak

import (
	"errors"
)

// Tool is the editor brush.
type Tool uint8

const (
	ToolNormal Tool = iota
	ToolDurable2
	ToolDurable3
	ToolSteel
	ToolExplosive
	ToolErase
	toolCount
)

// Cell returns the cell the tool paints.
func (t Tool) Cell() Cell {
	switch t {
	case ToolNormal:
		return CellNormal
	case ToolDurable2:
		return CellDurable2
	case ToolDurable3:
		return CellDurable3
	case ToolSteel:
		return CellSteel
	case ToolExplosive:
		return CellExplosive
	default:
		return CellEmpty
	}
}

func (t Tool) String() string {
	if t == ToolErase {
		return "erase"
	}
	return t.Cell().String()
}

const statusTTL = 3.0

// Editor is the stage editing model: a grid, a cursor and a brush.
type Editor struct {
	Stage     Stage
	Row, Col  int
	Tool      Tool
	Status    string
	LastCode  string
	statusTTL float64
}

// NewEditor creates an editor with an empty grid.
func NewEditor() *Editor {
	return &Editor{}
}

// MoveCursor shifts the cursor, staying on the grid.
func (e *Editor) MoveCursor(dr, dc int) {
	e.Row = min(max(e.Row+dr, 0), StageRows-1)
	e.Col = min(max(e.Col+dc, 0), StageCols-1)
}

// NextTool cycles the brush.
func (e *Editor) NextTool() {
	e.Tool = (e.Tool + 1) % toolCount
}

// Paint applies the current tool under the cursor.
func (e *Editor) Paint() {
	e.Stage.Set(e.Row, e.Col, e.Tool.Cell())
}

// Erase empties the cell under the cursor regardless of the tool.
func (e *Editor) Erase() {
	e.Stage.Set(e.Row, e.Col, CellEmpty)
}

// ClearAll empties the whole grid.
func (e *Editor) ClearAll() {
	e.Stage.Clear()
	e.SetStatus("stage cleared")
}

// Share encodes the grid, remembers the code and returns it.
func (e *Editor) Share() string {
	e.LastCode = e.Stage.Encode()
	e.SetStatus("share code ready")
	return e.LastCode
}

// Load replaces the grid with a decoded share code. On failure the grid is
// left empty, the status explains why and the error wraps ErrInvalidStage.
func (e *Editor) Load(code string) error {
	s, err := DecodeStage(code)
	if err != nil {
		e.Stage.Clear()
		if errors.Is(err, ErrInvalidStage) {
			e.SetStatus(ErrInvalidStage.Error())
		} else {
			e.SetStatus(err.Error())
		}
		return err
	}
	e.Stage = s
	e.LastCode = code
	e.SetStatus("stage loaded")
	return nil
}

// SetStatus shows a message for a few seconds.
func (e *Editor) SetStatus(msg string) {
	e.Status = msg
	e.statusTTL = statusTTL
}

// Tick ages the status message.
func (e *Editor) Tick(dt float64) {
	if e.statusTTL <= 0 {
		return
	}
	e.statusTTL -= dt
	if e.statusTTL <= 0 {
		e.Status = ""
	}
}
