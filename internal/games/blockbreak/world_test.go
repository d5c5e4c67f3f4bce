package blockbreak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// aimAt puts the ball just under blk, moving straight up into it.
func aimAt(b *Ball, blk *Block) {
	b.Pos = blk.Box.Center.Add(core.V(0, 19))
	b.Vel = core.V(0, -300)
}

func eventKinds(events []Event) []EventKind {
	var kinds []EventKind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestNewWorldLayout(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#.X", "", "..*")

	require.Len(t, w.Blocks, 3)
	assert.Equal(t, core.V(62.5, 120), w.Blocks[0].Box.Center)
	assert.Equal(t, core.V(212.5, 120), w.Blocks[1].Box.Center)
	assert.Equal(t, core.V(212.5, 180), w.Blocks[2].Box.Center)
	assert.Equal(t, BlockSteel, w.Blocks[1].Kind)

	require.Len(t, w.Balls, 1)
	b := w.Balls[0]
	assert.Equal(t, core.V(400, 400), b.Pos)
	assert.InDelta(t, 300, b.Speed(), 1e-9)
	assert.Less(t, b.Vel.Y, 0.0, "serves upward")

	assert.Equal(t, 100.0, w.Paddle.Width)
	assert.Equal(t, core.V(400, 750), w.Paddle.Pos)
}

func TestComboScoring(t *testing.T) {
	w := newTestWorld(t, testConfig(), "###")
	b := w.Balls[0]

	total := 0
	for i, want := range []int{10, 20, 30} {
		aimAt(b, w.Blocks[i])
		rep := w.Tick(idle(), tick)
		require.True(t, w.Blocks[i].Destroyed, "block %d", i)
		assert.Equal(t, want, rep.ScoreGained)
		total += rep.ScoreGained
	}
	assert.Equal(t, 60, total)
	assert.Equal(t, 3, w.Combo.Multiplier)
	assert.Equal(t, 3, w.Stats.BlocksDestroyed)
	assert.Equal(t, 3, w.Stats.BestCombo)
	assert.Equal(t, 60, w.Stats.Score)
}

func TestComboResetsAfterWindow(t *testing.T) {
	w := newTestWorld(t, testConfig(), "##")
	b := w.Balls[0]

	aimAt(b, w.Blocks[0])
	assert.Equal(t, 10, w.Tick(idle(), tick).ScoreGained)

	parkBall(w, 300)
	var lost bool
	for i := 0; i < 100; i++ {
		rep := w.Tick(idle(), tick)
		lost = lost || containsKind(rep.Events, EventComboLost)
	}
	assert.True(t, lost)

	aimAt(b, w.Blocks[1])
	assert.Equal(t, 10, w.Tick(idle(), tick).ScoreGained, "new streak scores x1")
}

func containsKind(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestDurableBlockScoresBonus(t *testing.T) {
	w := newTestWorld(t, testConfig(), "D")
	b := w.Balls[0]
	blk := w.Blocks[0]

	aimAt(b, blk)
	rep := w.Tick(idle(), tick)
	assert.Zero(t, rep.ScoreGained)
	assert.Equal(t, 1, blk.HP)
	assert.Positive(t, blk.Flash)
	assert.Contains(t, eventKinds(rep.Events), EventBlockHit)
	assert.Greater(t, b.Vel.Y, 0.0, "reflected down")

	aimAt(b, blk)
	rep = w.Tick(idle(), tick)
	assert.True(t, blk.Destroyed)
	assert.Equal(t, 15, rep.ScoreGained)
	assert.True(t, rep.Cleared)
}

func TestExplosiveChainCreditsEachBlockOnce(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#*##")
	b := w.Balls[0]

	aimAt(b, w.Blocks[1])
	rep := w.Tick(idle(), tick)

	assert.True(t, w.Blocks[0].Destroyed)
	assert.True(t, w.Blocks[1].Destroyed)
	assert.True(t, w.Blocks[2].Destroyed)
	assert.False(t, w.Blocks[3].Destroyed, "150 units away is outside the blast")

	assert.Equal(t, 10+20+30, rep.ScoreGained)
	assert.Equal(t, 3, w.Stats.BlocksDestroyed)

	var explosion *Event
	for i := range rep.Events {
		if rep.Events[i].Kind == EventExplosion {
			explosion = &rep.Events[i]
		}
	}
	require.NotNil(t, explosion)
	assert.Equal(t, 3, explosion.Value)
}

func TestBlastDoesNotRecreditBlockHitSameTick(t *testing.T) {
	for _, fire := range []bool{false, true} {
		name := "normal ball"
		if fire {
			name = "fire ball"
		}
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t, testConfig(), "*D")
			if fire {
				w.apply(PowerFire)
			}
			b := w.Balls[0]
			// under the gap, so the ball overlaps the explosive and the durable block
			b.Pos = core.V(100, 143)
			b.Vel = core.V(0, -300)

			rep := w.Tick(idle(), tick)

			assert.True(t, w.Blocks[0].Destroyed)
			assert.True(t, w.Blocks[1].Destroyed)
			assert.Equal(t, 10+25, rep.ScoreGained)
			assert.Equal(t, 2, w.Stats.BlocksDestroyed)
			assert.Equal(t, 2, w.Combo.Multiplier)

			var breaks int
			for _, e := range rep.Events {
				if e.Kind == EventBlockBreak {
					breaks++
				}
			}
			assert.Equal(t, 2, breaks)
			assert.NotContains(t, eventKinds(rep.Events), EventBlockHit)
		})
	}
}

func TestSteelOnlyStageIsCleared(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#X")
	aimAt(w.Balls[0], w.Blocks[0])
	rep := w.Tick(idle(), tick)
	assert.True(t, rep.Cleared)
	assert.True(t, w.Blocks[1].Alive())
}

func TestFireBallPassesThrough(t *testing.T) {
	w := newTestWorld(t, testConfig(), "D", "#")
	b := w.Balls[0]
	w.apply(PowerFire)

	b.Pos = core.V(62.5, 220)
	b.Vel = core.V(0, -300)
	var score int
	for i := 0; i < 40; i++ {
		score += w.Tick(idle(), tick).ScoreGained
	}

	assert.Equal(t, core.V(0, -300), b.Vel, "heading unchanged")
	assert.True(t, w.Blocks[1].Destroyed)
	assert.Equal(t, 1, w.Blocks[0].HP, "damaged once on entry, not every tick")
	assert.Equal(t, 10, score)
}

func TestPaddleMovement(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	parkBall(w, 300)

	for i := 0; i < 30; i++ {
		w.Tick(press(core.ActionLeft), tick)
	}
	assert.InDelta(t, 150, w.Paddle.Pos.X, 1e-6)

	for i := 0; i < 120; i++ {
		w.Tick(press(core.ActionLeft), tick)
	}
	assert.Equal(t, 60.0, w.Paddle.Pos.X, "stops at the wall")

	in := idle()
	in.SetPointer(1)
	w.Tick(in, tick)
	assert.Equal(t, 740.0, w.Paddle.Pos.X)

	in.SetPointer(0.5)
	w.Tick(in, tick)
	assert.Equal(t, 400.0, w.Paddle.Pos.X)

	// same span the renderer draws, no wall inset
	in.SetPointer(0.1)
	w.Tick(in, tick)
	assert.InDelta(t, 80, w.Paddle.Pos.X, 1e-9)
}

func TestPaddleBounceEvent(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	b := w.Balls[0]
	b.Pos = core.V(400, 730)
	b.Vel = core.V(0, 300)

	rep := w.Tick(idle(), tick)
	assert.Contains(t, eventKinds(rep.Events), EventPaddleBounce)
	assert.InDelta(t, 0, b.Vel.X, 1e-9)
	assert.InDelta(t, -300, b.Vel.Y, 1e-9)
	assert.Equal(t, 732.5, b.Pos.Y, "sits on the paddle")
}

func TestBallLost(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	b := w.Balls[0]
	b.Pos = core.V(100, 805)
	b.Vel = core.V(0, 300)

	rep := w.Tick(idle(), tick)
	assert.True(t, rep.Lost)
	assert.False(t, rep.Cleared)
	assert.Empty(t, w.Balls)
	assert.Contains(t, eventKinds(rep.Events), EventBallLost)
}

func TestLosingBothBallsInOneTick(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	w.spawnBall(core.V(0, 0), core.V(0, 0))
	for i, b := range w.Balls {
		b.Pos = core.V(100+float64(i)*200, 805)
		b.Vel = core.V(0, 300)
	}

	rep := w.Tick(idle(), tick)
	assert.True(t, rep.Lost)
	assert.Empty(t, w.Balls)
}

func TestOneBallLeftIsNotALoss(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	parkBall(w, 300)
	extra := w.spawnBall(core.V(100, 805), core.V(0, 300))

	rep := w.Tick(idle(), tick)
	assert.False(t, rep.Lost)
	assert.True(t, extra.Lost)
	assert.Len(t, w.Balls, 1)
}

func TestClearAndLossReportedTogether(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	w.Balls[0].Pos = core.V(100, 805)
	w.Balls[0].Vel = core.V(0, 300)
	w.Blocks[0].Destroyed = true

	rep := w.Tick(idle(), tick)
	assert.True(t, rep.Cleared)
	assert.True(t, rep.Lost)
}

func TestCatchingCapsuleAppliesEffect(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	parkBall(w, 300)
	w.PowerUps.Drops = append(w.PowerUps.Drops, &Drop{
		Kind: PowerWide, Pos: core.V(400, 735), Vel: core.V(0, 150), Size: 20,
	})

	rep := w.Tick(idle(), tick)
	assert.Contains(t, eventKinds(rep.Events), EventPowerUp)
	assert.Equal(t, 150.0, w.Paddle.Width)
	assert.Empty(t, w.PowerUps.Drops)
}

func TestDropsSpawnFromBrokenBlocks(t *testing.T) {
	cfg := testConfig()
	cfg.PowerUps.DropChance = 1
	w := newTestWorld(t, cfg, "#")

	aimAt(w.Balls[0], w.Blocks[0])
	rep := w.Tick(idle(), tick)
	assert.Contains(t, eventKinds(rep.Events), EventDropSpawn)
	require.Len(t, w.PowerUps.Drops, 1)
	assert.Equal(t, w.Blocks[0].Box.Center, w.PowerUps.Drops[0].Pos)
}

func TestWidePaddleClampedAtWall(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	parkBall(w, 300)
	w.Paddle.Pos.X = 60

	w.apply(PowerWide)
	assert.Equal(t, 85.0, w.Paddle.Pos.X)
}
