package blockbreak

import (
	"math"
	"testing"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
)

const tick = 1.0 / 60

// testConfig is the default configuration at 300 units/s with drops disabled,
// so outcomes do not depend on the RNG.
func testConfig() config.BlockbreakConfig {
	cfg := config.DefaultBlockbreakConfig()
	cfg.Ball.Speed = 300
	cfg.PowerUps.DropChance = 0
	return cfg
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 42}
}

// newTestWorld builds a level 1 world from an ASCII layout.
func newTestWorld(t *testing.T, cfg config.BlockbreakConfig, lines ...string) *World {
	t.Helper()
	stage, err := ParseStage(lines)
	if err != nil {
		t.Fatalf("ParseStage: %v", err)
	}
	return NewWorld(cfg, stage, 1, 1, 7)
}

// parkBall puts the only ball in open space, moving sideways between the
// walls so it never meets blocks, paddle or the bottom edge.
func parkBall(w *World, speed float64) *Ball {
	b := w.Balls[0]
	b.Pos = core.V(400, 500)
	b.Vel = core.V(speed, 0)
	return b
}

func block(kind BlockKind, hp int, x, y float64) *Block {
	return &Block{Kind: kind, HP: hp, MaxHP: hp, Box: core.BoxAt(core.V(x, y), 70, 25)}
}

func nearly(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle() core.InputFrame { return core.NewInputFrame() }
