package blockbreak

import "math"

// Snapshot is a flat copy of the game state, for determinism checks and
// debugging. Floats are stored as their IEEE bits so equal states hash equal.
type Snapshot struct {
	Tick  uint64
	Mode  Mode
	Score int
	Level int

	PaddleX     uint64
	PaddleWidth uint64

	// per ball: ID, X, Y, VX, VY
	Balls []uint64
	// per block: alive, HP
	Blocks []int
	// per drop: kind, X, Y
	Drops []uint64
	// per effect: kind, remaining, permanent
	Effects []uint64

	ComboCount int
	ComboMult  int
	RNGState   uint64

	EditorStage string
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  g.tick,
		Mode:  g.mode,
		Score: g.session.Score,
		Level: g.session.Level,
	}
	if g.editor != nil {
		snap.EditorStage = g.editor.Stage.Encode()
	}

	w := g.world
	if w == nil {
		return snap
	}

	snap.PaddleX = math.Float64bits(w.Paddle.Pos.X)
	snap.PaddleWidth = math.Float64bits(w.Paddle.Width)
	for _, b := range w.Balls {
		snap.Balls = append(snap.Balls,
			uint64(b.ID), //#nosec G115 -- ids are positive
			math.Float64bits(b.Pos.X), math.Float64bits(b.Pos.Y),
			math.Float64bits(b.Vel.X), math.Float64bits(b.Vel.Y))
	}
	for _, blk := range w.Blocks {
		alive := 0
		if blk.Alive() {
			alive = 1
		}
		snap.Blocks = append(snap.Blocks, alive, blk.HP)
	}
	for _, d := range w.PowerUps.Drops {
		snap.Drops = append(snap.Drops, uint64(d.Kind), math.Float64bits(d.Pos.X), math.Float64bits(d.Pos.Y))
	}
	for _, e := range w.PowerUps.Effects.List() {
		perm := uint64(0)
		if e.Permanent {
			perm = 1
		}
		snap.Effects = append(snap.Effects, uint64(e.Kind), math.Float64bits(e.Remaining), perm)
	}
	snap.ComboCount = w.Combo.Count
	snap.ComboMult = w.Combo.Multiplier
	snap.RNGState = w.rng.State()
	return snap
}

// Hash folds the snapshot into one number.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }

	mix(uint64(snap.Mode))
	mix(uint64(snap.Score)) //#nosec G115 -- hash computation
	mix(uint64(snap.Level)) //#nosec G115 -- hash computation
	mix(snap.PaddleX)
	mix(snap.PaddleWidth)
	for _, v := range snap.Balls {
		mix(v)
	}
	for _, v := range snap.Blocks {
		mix(uint64(v)) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Drops {
		mix(v)
	}
	for _, v := range snap.Effects {
		mix(v)
	}
	mix(uint64(snap.ComboCount)) //#nosec G115 -- hash computation
	mix(uint64(snap.ComboMult))  //#nosec G115 -- hash computation
	mix(snap.RNGState)
	for i := 0; i < len(snap.EditorStage); i++ {
		mix(uint64(snap.EditorStage[i]))
	}
	return h
}
