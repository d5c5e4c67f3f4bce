package blockbreak

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// Stage grid dimensions. Every layout, authored or generated, uses this grid.
const (
	StageRows = 7
	StageCols = 10
)

const (
	stageVersion  = 1
	stageCells    = StageRows * StageCols
	stagePacked   = stageCells / 2
	stageWireSize = 1 + stagePacked + 2
)

// ErrInvalidStage is returned for share codes that do not decode to a stage.
var ErrInvalidStage = errors.New("invalid stage data")

// Cell is one slot of a stage grid.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellNormal
	CellDurable2
	CellDurable3
	CellSteel
	CellExplosive
	cellCount
)

// Valid reports whether c is a known cell value.
func (c Cell) Valid() bool { return c < cellCount }

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellNormal:
		return "normal"
	case CellDurable2:
		return "durable(2)"
	case CellDurable3:
		return "durable(3)"
	case CellSteel:
		return "steel"
	case CellExplosive:
		return "explosive"
	default:
		return "invalid"
	}
}

// Glyph is the character used in ASCII layouts.
func (c Cell) Glyph() rune {
	switch c {
	case CellNormal:
		return '#'
	case CellDurable2:
		return 'D'
	case CellDurable3:
		return 'H'
	case CellSteel:
		return 'X'
	case CellExplosive:
		return '*'
	default:
		return '.'
	}
}

// Block returns the block kind and hit points a cell spawns.
// ok is false for empty cells.
func (c Cell) Block() (kind BlockKind, hp int, ok bool) {
	switch c {
	case CellNormal:
		return BlockNormal, 1, true
	case CellDurable2:
		return BlockDurable, 2, true
	case CellDurable3:
		return BlockDurable, 3, true
	case CellSteel:
		return BlockSteel, 1, true
	case CellExplosive:
		return BlockExplosive, 1, true
	default:
		return 0, 0, false
	}
}

// Color is the base colour a cell's block is drawn with.
func (c Cell) Color() core.Color {
	switch c {
	case CellNormal:
		return core.ColorCyan
	case CellDurable2:
		return core.ColorMagenta
	case CellDurable3:
		return core.ColorBlue
	case CellSteel:
		return core.ColorGray
	case CellExplosive:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

func cellFromGlyph(r rune) (Cell, bool) {
	switch r {
	case '.', ' ':
		return CellEmpty, true
	case '#':
		return CellNormal, true
	case 'D', 'd':
		return CellDurable2, true
	case 'H', 'h':
		return CellDurable3, true
	case 'X', 'x':
		return CellSteel, true
	case '*':
		return CellExplosive, true
	default:
		return 0, false
	}
}

// Stage is a block layout. It is a plain value: copies are independent.
type Stage struct {
	Cells [StageRows][StageCols]Cell
}

// At returns the cell at (row, col), or CellEmpty outside the grid.
func (s Stage) At(row, col int) Cell {
	if row < 0 || row >= StageRows || col < 0 || col >= StageCols {
		return CellEmpty
	}
	return s.Cells[row][col]
}

// Set writes a cell. Writes outside the grid are ignored.
func (s *Stage) Set(row, col int, c Cell) {
	if row < 0 || row >= StageRows || col < 0 || col >= StageCols || !c.Valid() {
		return
	}
	s.Cells[row][col] = c
}

// Clear empties the grid.
func (s *Stage) Clear() { s.Cells = [StageRows][StageCols]Cell{} }

// Count returns the number of non-empty cells.
func (s Stage) Count() int {
	n := 0
	for _, row := range s.Cells {
		for _, c := range row {
			if c != CellEmpty {
				n++
			}
		}
	}
	return n
}

// Clearable reports whether the stage has a block that can be destroyed.
// A stage of only steel can never be won.
func (s Stage) Clearable() bool {
	for _, row := range s.Cells {
		for _, c := range row {
			if c != CellEmpty && c != CellSteel {
				return true
			}
		}
	}
	return false
}

// Encode packs the stage into a URL-safe share code: a version byte, two
// cells per byte, and a 16-bit CRC-32 tail, in unpadded base64url.
func (s Stage) Encode() string {
	buf := make([]byte, stageWireSize)
	buf[0] = stageVersion
	for i := 0; i < stageCells; i += 2 {
		hi := s.Cells[i/StageCols][i%StageCols]
		lo := s.Cells[(i+1)/StageCols][(i+1)%StageCols]
		buf[1+i/2] = byte(hi)<<4 | byte(lo)
	}
	sum := crc32.ChecksumIEEE(buf[:1+stagePacked])
	binary.BigEndian.PutUint16(buf[1+stagePacked:], uint16(sum)) //#nosec G115 -- truncated checksum
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodeStage parses a share code produced by Encode. Every failure wraps
// ErrInvalidStage.
func DecodeStage(code string) (Stage, error) {
	code = strings.TrimRight(strings.TrimSpace(code), "=")
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return Stage{}, fmt.Errorf("stage: %w: %v", ErrInvalidStage, err)
	}
	if len(raw) != stageWireSize {
		return Stage{}, fmt.Errorf("stage: %w: %d bytes, want %d", ErrInvalidStage, len(raw), stageWireSize)
	}
	if raw[0] != stageVersion {
		return Stage{}, fmt.Errorf("stage: %w: unsupported version %d", ErrInvalidStage, raw[0])
	}
	want := uint16(crc32.ChecksumIEEE(raw[:1+stagePacked])) //#nosec G115 -- truncated checksum
	if got := binary.BigEndian.Uint16(raw[1+stagePacked:]); got != want {
		return Stage{}, fmt.Errorf("stage: %w: checksum mismatch", ErrInvalidStage)
	}

	var s Stage
	for i, b := range raw[1 : 1+stagePacked] {
		for j, c := range [2]Cell{Cell(b >> 4), Cell(b & 0x0f)} {
			if !c.Valid() {
				return Stage{}, fmt.Errorf("stage: %w: unknown cell %d", ErrInvalidStage, c)
			}
			n := i*2 + j
			s.Cells[n/StageCols][n%StageCols] = c
		}
	}
	return s, nil
}

// ParseStage reads an ASCII layout, one line per row:
//
//	'.' = empty      '#' = normal
//	'D' = durable(2) 'H' = durable(3)
//	'X' = steel      '*' = explosive
//
// Short or missing lines are padded with empty cells.
func ParseStage(lines []string) (Stage, error) {
	var s Stage
	if len(lines) > StageRows {
		return s, fmt.Errorf("stage: %d rows, max %d", len(lines), StageRows)
	}
	for row, line := range lines {
		line = strings.TrimRight(line, " ")
		runes := []rune(line)
		if len(runes) > StageCols {
			return s, fmt.Errorf("stage: row %d has %d columns, max %d", row+1, len(runes), StageCols)
		}
		for col, r := range runes {
			c, ok := cellFromGlyph(r)
			if !ok {
				return s, fmt.Errorf("stage: row %d col %d: unknown glyph %q", row+1, col+1, r)
			}
			s.Cells[row][col] = c
		}
	}
	return s, nil
}

// MustParseStage is ParseStage for built-in layouts.
func MustParseStage(lines ...string) Stage {
	s, err := ParseStage(lines)
	if err != nil {
		panic(err)
	}
	return s
}

// Lines returns the ASCII layout, one string per row.
func (s Stage) Lines() []string {
	lines := make([]string, StageRows)
	for row := range s.Cells {
		var sb strings.Builder
		for _, c := range s.Cells[row] {
			sb.WriteRune(c.Glyph())
		}
		lines[row] = sb.String()
	}
	return lines
}

// String returns the ASCII layout with rows separated by newlines.
func (s Stage) String() string {
	return strings.Join(s.Lines(), "\n")
}
