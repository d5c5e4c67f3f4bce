// Package blockbreak implements a brick breaker with power-ups, combo
// scoring, explosive chain reactions and a stage editor whose layouts can be
// shared as short codes.
package blockbreak

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blockbreak/internal/config"
)

var classicStage = MustParseStage(
	"##########",
	"##########",
	"##########",
	"##########",
	"##########",
)

var fortressStage = MustParseStage(
	"##########",
	"*#......#*",
	".##....##.",
	"..##..##..",
	"...#**#...",
	"....XX....",
)

// diamondStage places blocks inside a diamond centred on the grid, with every
// third diagonal made of two-hit blocks.
func diamondStage() Stage {
	var s Stage
	midRow := float64(StageRows-1) / 2
	midCol := float64(StageCols-1) / 2
	for r := 0; r < StageRows; r++ {
		half := (midRow - math.Abs(float64(r)-midRow)) * 1.5
		for c := 0; c < StageCols; c++ {
			if math.Abs(float64(c)-midCol) > half+0.5 {
				continue
			}
			if (r+c)%3 == 0 {
				s.Cells[r][c] = CellDurable2
			} else {
				s.Cells[r][c] = CellNormal
			}
		}
	}
	return s
}

// LevelName returns a short title for a level number.
func LevelName(level int) string {
	switch level {
	case 1:
		return "Classic"
	case 2:
		return "Diamond"
	case 3:
		return "Fortress"
	default:
		return fmt.Sprintf("Sector %d", level)
	}
}

// GenerateLevel returns the layout for a level. The first levels are fixed;
// later ones fill the whole grid and seed a growing share of special blocks
// at shuffled positions. The same seed and level always give the same stage,
// and the result always has at least one breakable block.
func GenerateLevel(level int, seed int64, prog *config.Progression) Stage {
	if !prog.Procedural(level) {
		switch level {
		case 2:
			return diamondStage()
		case 3:
			return fortressStage
		default:
			return classicStage
		}
	}

	rng := NewRNG(seed ^ int64(level)*0x9E3779B9)
	var s Stage
	for r := range s.Cells {
		for c := range s.Cells[r] {
			s.Cells[r][c] = CellNormal
		}
	}

	special := prog.SpecialCount(level, stageCells)
	toughOK := prog.MaxDurableHits(level) >= 3
	for _, idx := range rng.Perm(stageCells)[:special] {
		var cell Cell
		switch rng.Intn(4) {
		case 0, 1:
			cell = CellDurable2
			if toughOK && rng.Chance(0.5) {
				cell = CellDurable3
			}
		case 2:
			cell = CellSteel
		default:
			cell = CellExplosive
		}
		s.Cells[idx/StageCols][idx%StageCols] = cell
	}

	if !s.Clearable() {
		s.Cells[0][0] = CellNormal
	}
	return s
}
