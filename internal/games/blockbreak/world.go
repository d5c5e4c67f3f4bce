package blockbreak

import (
	"math"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
)

// LevelStats summarises one level for the level-clear screen.
type LevelStats struct {
	BlocksDestroyed int
	BestCombo       int
	Score           int
	Time            float64
}

// TickReport is what a single World.Tick produced.
type TickReport struct {
	Events      []Event
	ScoreGained int
	Cleared     bool
	Lost        bool
}

// World is the simulation of one level: paddle, balls, blocks, capsules,
// effects and the combo streak. It knows nothing about menus or sessions.
type World struct {
	Level     int
	BaseSpeed float64 // level-scaled ball speed without effects
	Arena     Arena
	Paddle    *Paddle
	Balls     []*Ball
	Blocks    []*Block
	PowerUps  *PowerUps
	Combo     *Combo
	Stats     LevelStats

	cfg    config.BlockbreakConfig
	rng    *RNG
	nextID int
	report *TickReport
}

// NewWorld builds a level from a stage. speedMult scales the configured ball
// speed for this level.
func NewWorld(cfg config.BlockbreakConfig, stage Stage, level int, speedMult float64, seed int64) *World {
	rng := NewRNG(seed)
	w := &World{
		Level:     level,
		BaseSpeed: cfg.Ball.Speed * speedMult,
		Arena: Arena{
			Width:  cfg.Arena.Width,
			Height: cfg.Arena.Height,
			Wall:   cfg.Arena.WallThickness,
		},
		PowerUps: NewPowerUps(cfg.PowerUps, rng),
		Combo:    NewCombo(cfg.Combo),
		cfg:      cfg,
		rng:      rng,
	}
	w.Paddle = &Paddle{
		Pos:       core.V(w.Arena.Width/2, cfg.Paddle.Y),
		Width:     cfg.Paddle.Width,
		BaseWidth: cfg.Paddle.Width,
		Height:    cfg.Paddle.Height,
	}
	w.Blocks = buildBlocks(cfg, stage)
	w.spawnBall(w.Arena.Center(), core.V(1, -1).WithLen(w.BaseSpeed))
	return w
}

// BlockCenter returns the arena position of a grid cell.
func BlockCenter(cfg config.BlockbreakConfig, row, col int) core.Vec2 {
	pitchX := cfg.Blocks.Width + cfg.Blocks.Gap
	pitchY := cfg.Blocks.Height + cfg.Blocks.Gap
	total := StageCols*pitchX - cfg.Blocks.Gap
	startX := cfg.Arena.Width/2 - total/2 + cfg.Blocks.Width/2
	return core.V(startX+float64(col)*pitchX, cfg.Blocks.TopY+float64(row)*pitchY)
}

func buildBlocks(cfg config.BlockbreakConfig, stage Stage) []*Block {
	var blocks []*Block
	for r := 0; r < StageRows; r++ {
		for c := 0; c < StageCols; c++ {
			kind, hp, ok := stage.Cells[r][c].Block()
			if !ok {
				continue
			}
			blocks = append(blocks, &Block{
				Row:   r,
				Col:   c,
				Kind:  kind,
				HP:    hp,
				MaxHP: hp,
				Box:   core.BoxAt(BlockCenter(cfg, r, c), cfg.Blocks.Width, cfg.Blocks.Height),
			})
		}
	}
	return blocks
}

func (w *World) spawnBall(pos, vel core.Vec2) *Ball {
	w.nextID++
	b := &Ball{ID: w.nextID, Pos: pos, Vel: vel, Radius: w.cfg.Ball.Size / 2}
	w.Balls = append(w.Balls, b)
	return b
}

// TargetSpeed is the speed every ball should currently have.
func (w *World) TargetSpeed() float64 {
	if w.PowerUps.Effects.Has(PowerSlow) {
		return w.BaseSpeed * w.cfg.PowerUps.SlowFactor
	}
	return w.BaseSpeed
}

// LiveBalls counts balls not marked lost.
func (w *World) LiveBalls() int {
	n := 0
	for _, b := range w.Balls {
		if !b.Lost {
			n++
		}
	}
	return n
}

// AliveBlocks counts blocks still on the field, steel included.
func (w *World) AliveBlocks() int {
	n := 0
	for _, b := range w.Blocks {
		if b.Alive() {
			n++
		}
	}
	return n
}

// Tick advances the level by dt seconds. Order: paddle and ball movement,
// capsule fall, combo window, per-ball walls then paddle then blocks, effect
// timers, capsule catches, compaction, then the win and loss checks.
func (w *World) Tick(in core.InputFrame, dt float64) TickReport {
	rep := TickReport{}
	w.report = &rep
	defer func() { w.report = nil }()

	liveBefore := w.LiveBalls()

	MovePaddle(w.Paddle, in, w.cfg.Paddle.Speed, dt, w.Arena)
	MoveBalls(w.Balls, dt)
	w.PowerUps.Update(dt, w.Arena.Height)
	if w.Combo.Tick(dt) {
		w.emit(Event{Kind: EventComboLost})
	}
	for _, blk := range w.Blocks {
		if blk.Flash > 0 {
			blk.Flash = max(0, blk.Flash-dt)
		}
	}

	fire := w.PowerUps.Effects.Has(PowerFire)
	maxAngle := w.cfg.Paddle.MaxBounceAngle * math.Pi / 180
	lost := 0
	for _, b := range w.Balls {
		if b.Lost {
			continue
		}
		bounced, out := CollideWalls(b, w.Arena)
		if out {
			b.Lost = true
			lost++
			w.emit(Event{Kind: EventBallLost, Pos: b.Pos})
			continue
		}
		if bounced {
			w.emit(Event{Kind: EventWallBounce, Pos: b.Pos})
		}
		if BouncePaddle(b, w.Paddle, maxAngle, w.TargetSpeed()) {
			w.emit(Event{Kind: EventPaddleBounce, Pos: b.Pos})
		}
		for _, hit := range ResolveBlocks(b, w.Blocks, fire, w.cfg.Blocks.FlashDuration) {
			switch {
			case hit.Destroyed:
				w.destroy(hit.Block)
			case !hit.Block.Destroyed:
				w.emit(Event{Kind: EventBlockHit, Pos: hit.Block.Box.Center})
			}
		}
	}

	for _, kind := range w.PowerUps.Effects.Tick(dt) {
		w.expire(kind)
	}
	for _, kind := range w.PowerUps.Catch(w.Paddle) {
		w.apply(kind)
	}

	w.compact()
	if len(w.Balls) <= 1 {
		w.PowerUps.Effects.Remove(PowerMulti)
	}

	w.Stats.Time += dt
	w.Stats.BestCombo = max(w.Stats.BestCombo, w.Combo.Best)
	w.Stats.Score += rep.ScoreGained

	rep.Cleared = Cleared(w.Blocks)
	rep.Lost = liveBefore-lost <= 0
	return rep
}

func (w *World) emit(e Event) {
	if w.report != nil {
		w.report.Events = append(w.report.Events, e)
	}
}

// destroy credits a block that a ball just destroyed and, for explosives,
// everything the blast chain takes with it.
func (w *World) destroy(blk *Block) {
	w.credit(blk)
	if blk.Kind != BlockExplosive {
		return
	}
	chain := Detonate(blk, w.Blocks, w.cfg.Blocks.ExplosionRadius)
	w.emit(Event{Kind: EventExplosion, Pos: blk.Box.Center, Value: len(chain) + 1})
	for _, b := range chain {
		w.credit(b)
	}
}

func (w *World) credit(blk *Block) {
	mult := w.Combo.Register()
	points := w.cfg.Blocks.Points * mult
	if blk.Kind == BlockDurable {
		points += w.cfg.Blocks.DurableBonus
	}
	w.Combo.ShowPopup(points)
	w.report.ScoreGained += points
	w.Stats.BlocksDestroyed++
	w.emit(Event{Kind: EventBlockBreak, Pos: blk.Box.Center, Value: points})

	if d, ok := w.PowerUps.TrySpawn(blk.Box.Center); ok {
		w.emit(Event{Kind: EventDropSpawn, Pos: d.Pos, Power: d.Kind})
	}
}

// apply activates a caught capsule.
func (w *World) apply(kind PowerUpKind) {
	w.emit(Event{Kind: EventPowerUp, Pos: w.Paddle.Pos, Power: kind})
	pu := w.PowerUps
	switch kind {
	case PowerWide:
		pu.Effects.Add(PowerWide, pu.Duration(PowerWide))
		w.Paddle.Width = w.Paddle.BaseWidth * w.cfg.PowerUps.WideFactor
		ClampPaddle(w.Paddle, w.Arena)
	case PowerSlow:
		pu.Effects.Add(PowerSlow, pu.Duration(PowerSlow))
		w.renormalize()
	case PowerFire:
		pu.Effects.Add(PowerFire, pu.Duration(PowerFire))
	case PowerMulti:
		w.splitBall()
	}
}

// expire undoes an effect whose timer ran out.
func (w *World) expire(kind PowerUpKind) {
	w.emit(Event{Kind: EventEffectExpired, Power: kind})
	switch kind {
	case PowerWide:
		w.Paddle.Width = w.Paddle.BaseWidth
		ClampPaddle(w.Paddle, w.Arena)
	case PowerSlow:
		w.renormalize()
	case PowerFire:
		for _, b := range w.Balls {
			b.inside = nil
		}
	}
}

// renormalize sets every ball to the current target speed.
func (w *World) renormalize() {
	speed := w.TargetSpeed()
	for _, b := range w.Balls {
		if !b.Lost {
			b.SetSpeed(speed)
		}
	}
}

// splitBall adds two balls fanned out around the first live ball's heading.
func (w *World) splitBall() {
	var src *Ball
	for _, b := range w.Balls {
		if !b.Lost {
			src = b
			break
		}
	}
	if src == nil {
		return
	}
	vel := src.Vel
	if vel.IsZero() {
		vel = core.V(0, -w.TargetSpeed())
	}
	angle := w.cfg.PowerUps.MultiBallAngle
	w.spawnBall(src.Pos, vel.Rotate(angle))
	w.spawnBall(src.Pos, vel.Rotate(-angle))
	w.PowerUps.Effects.AddPermanent(PowerMulti)
}

// compact removes balls and capsules marked during the tick.
func (w *World) compact() {
	kept := w.Balls[:0]
	for _, b := range w.Balls {
		if !b.Lost {
			kept = append(kept, b)
		}
	}
	clear(w.Balls[len(kept):])
	w.Balls = kept
	w.PowerUps.Compact()
}
