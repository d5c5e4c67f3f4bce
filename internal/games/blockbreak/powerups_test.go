package blockbreak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
)

func TestEffectSetStacksAndRefreshes(t *testing.T) {
	var s EffectSet

	assert.False(t, s.Add(PowerWide, 8))
	assert.False(t, s.Add(PowerSlow, 6))
	assert.Len(t, s.List(), 2)

	s.Tick(5)
	assert.InDelta(t, 3, s.Remaining(PowerWide), 1e-9)

	assert.True(t, s.Add(PowerWide, 8), "same kind refreshes")
	assert.Len(t, s.List(), 2)
	assert.Equal(t, 8.0, s.Remaining(PowerWide), "refresh restores the full duration, no stacking")

	expired := s.Tick(1)
	assert.Equal(t, []PowerUpKind{PowerSlow}, expired)
	assert.True(t, s.Has(PowerWide))
	assert.False(t, s.Has(PowerSlow))
}

func TestEffectSetPermanent(t *testing.T) {
	var s EffectSet
	s.AddPermanent(PowerMulti)
	s.Add(PowerFire, 1)

	assert.Equal(t, []PowerUpKind{PowerFire}, s.Tick(100))
	assert.True(t, s.Has(PowerMulti))

	assert.True(t, s.Remove(PowerMulti))
	assert.False(t, s.Remove(PowerMulti))
	assert.Empty(t, s.List())
}

func TestTrySpawnIsDeterministic(t *testing.T) {
	cfg := config.DefaultBlockbreakConfig().PowerUps
	roll := func() []PowerUpKind {
		m := NewPowerUps(cfg, NewRNG(99))
		var kinds []PowerUpKind
		for i := 0; i < 500; i++ {
			if d, ok := m.TrySpawn(core.V(100, 100)); ok {
				kinds = append(kinds, d.Kind)
			}
		}
		return kinds
	}

	first := roll()
	assert.Equal(t, first, roll())
	// 500 rolls at 15% should land well inside these bounds
	assert.Greater(t, len(first), 40)
	assert.Less(t, len(first), 120)

	seen := map[PowerUpKind]bool{}
	for _, k := range first {
		seen[k] = true
	}
	assert.Len(t, seen, int(powerUpCount), "every kind can drop")
}

func TestTrySpawnRespectsZeroChance(t *testing.T) {
	cfg := config.DefaultBlockbreakConfig().PowerUps
	cfg.DropChance = 0
	m := NewPowerUps(cfg, NewRNG(1))
	for i := 0; i < 100; i++ {
		_, ok := m.TrySpawn(core.V(0, 0))
		require.False(t, ok)
	}
}

func TestDropsFallAndGetCaught(t *testing.T) {
	cfg := config.DefaultBlockbreakConfig().PowerUps
	m := NewPowerUps(cfg, NewRNG(1))
	m.Drops = []*Drop{
		{Kind: PowerFire, Pos: core.V(400, 700), Vel: core.V(0, 150), Size: 20},
		{Kind: PowerWide, Pos: core.V(100, 795), Vel: core.V(0, 150), Size: 20},
	}
	paddle := &Paddle{Pos: core.V(400, 750), Width: 100, Height: 20}

	var caught []PowerUpKind
	for i := 0; i < 60 && len(caught) == 0; i++ {
		m.Update(tick, 800)
		caught = m.Catch(paddle)
	}
	assert.Equal(t, []PowerUpKind{PowerFire}, caught)
	assert.True(t, m.Drops[1].Gone, "missed capsule fell out")

	m.Compact()
	assert.Empty(t, m.Drops)
}

func TestSlowBallRenormalizesAndRestores(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	b := parkBall(w, 300)

	w.apply(PowerSlow)
	assert.InDelta(t, 180, b.Speed(), 1e-9)

	for i := 0; i < 370; i++ {
		w.Tick(idle(), tick)
		require.Len(t, w.Balls, 1)
	}
	assert.False(t, w.PowerUps.Effects.Has(PowerSlow))
	assert.InDelta(t, 300, w.Balls[0].Speed(), 1e-9)
}

func TestSlowBallRestoresToLevelSpeed(t *testing.T) {
	w := NewWorld(testConfig(), MustParseStage("#"), 3, 1.2, 1)
	b := parkBall(w, w.BaseSpeed)
	require.InDelta(t, 360, w.BaseSpeed, 1e-9)

	w.apply(PowerSlow)
	assert.InDelta(t, 216, b.Speed(), 1e-9)
	w.PowerUps.Effects.Tick(10)
	w.expire(PowerSlow)
	assert.InDelta(t, 360, b.Speed(), 1e-9)
}

func TestWidePaddle(t *testing.T) {
	w := newTestWorld(t, testConfig(), "#")
	parkBall(w, 300)

	w.apply(PowerWide)
	assert.Equal(t, 150.0, w.Paddle.Width)

	for i := 0; i < 4*60; i++ {
		w.Tick(idle(), tick)
	}
	w.apply(PowerWide) // refresh at 4s: a further 8s from now
	for i := 0; i < 6*60; i++ {
		w.Tick(idle(), tick)
	}
	assert.Equal(t, 150.0, w.Paddle.Width, "still wide 10s after first catch")

	for i := 0; i < 3*60; i++ {
		w.Tick(idle(), tick)
	}
	assert.Equal(t, 100.0, w.Paddle.Width)
}

func TestMultiBall(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(t, cfg, "#")
	src := parkBall(w, 300)
	src.Vel = core.V(0, -300)

	w.apply(PowerMulti)
	require.Len(t, w.Balls, 3)
	assert.True(t, w.PowerUps.Effects.Has(PowerMulti))

	for _, b := range w.Balls {
		assert.InDelta(t, 300, b.Speed(), 1e-9)
		assert.Equal(t, src.Pos, b.Pos)
	}
	left, right := w.Balls[1].Vel, w.Balls[2].Vel
	assert.InDelta(t, -left.X, right.X, 1e-9, "fanned symmetrically")
	assert.NotZero(t, left.X)

	// lose every extra ball: the effect ends with one ball left
	w.Balls[1].Pos = core.V(400, 900)
	w.Balls[2].Pos = core.V(400, 900)
	w.Balls[0].Vel = core.V(300, 0)
	rep := w.Tick(idle(), tick)
	assert.False(t, rep.Lost)
	assert.Len(t, w.Balls, 1)
	assert.False(t, w.PowerUps.Effects.Has(PowerMulti))
}
