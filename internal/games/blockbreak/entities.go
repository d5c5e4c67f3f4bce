package blockbreak

import (
	"fmt"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// BlockKind is the behaviour class of a block.
type BlockKind uint8

const (
	BlockNormal BlockKind = iota
	BlockDurable
	BlockSteel
	BlockExplosive
)

func (k BlockKind) String() string {
	switch k {
	case BlockNormal:
		return "normal"
	case BlockDurable:
		return "durable"
	case BlockSteel:
		return "steel"
	case BlockExplosive:
		return "explosive"
	default:
		return "unknown"
	}
}

// Breakable reports whether the kind can ever be destroyed.
func (k BlockKind) Breakable() bool { return k != BlockSteel }

// Block is one brick on the field. Destroyed blocks stay in the slice so that
// pointers held by balls remain valid for the rest of the level.
type Block struct {
	Row, Col  int
	Kind      BlockKind
	HP        int
	MaxHP     int
	Box       core.AABB
	Destroyed bool
	Flash     float64 // seconds of hit highlight left
}

// Alive reports whether the block is still on the field.
func (b *Block) Alive() bool { return !b.Destroyed }

// Hit applies one ball impact and reports whether it destroyed the block.
// Steel only flashes. Hitting a block that is already destroyed is a no-op.
func (b *Block) Hit(flash float64) bool {
	if b.Destroyed {
		return false
	}
	b.Flash = flash
	switch b.Kind {
	case BlockSteel:
		return false
	case BlockExplosive:
		b.HP = 0
	default:
		if b.HP <= 0 {
			panic(fmt.Sprintf("blockbreak: live %s block at (%d,%d) has hp %d", b.Kind, b.Row, b.Col, b.HP))
		}
		b.HP--
	}
	if b.HP <= 0 {
		b.Destroyed = true
		return true
	}
	return false
}

// Ball is a moving ball. Its speed equals the world's current target speed.
type Ball struct {
	ID     int
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Lost   bool

	// blocks the ball currently overlaps while passing through them
	inside map[*Block]struct{}
}

// Box returns the ball's collision box.
func (b *Ball) Box() core.AABB {
	return core.BoxAt(b.Pos, 2*b.Radius, 2*b.Radius)
}

// Speed returns the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 { return b.Vel.Len() }

// SetSpeed rescales the velocity to speed. A stopped ball is launched straight up.
func (b *Ball) SetSpeed(speed float64) {
	if b.Vel.IsZero() {
		b.Vel = core.V(0, -speed)
		return
	}
	b.Vel = b.Vel.WithLen(speed)
}

// Paddle is the player's bat. Pos is its centre.
type Paddle struct {
	Pos       core.Vec2
	Width     float64
	BaseWidth float64
	Height    float64
}

// Box returns the paddle's collision box.
func (p *Paddle) Box() core.AABB {
	return core.BoxAt(p.Pos, p.Width, p.Height)
}

// Drop is a falling power-up capsule.
type Drop struct {
	Kind PowerUpKind
	Pos  core.Vec2
	Vel  core.Vec2
	Size float64
	Gone bool
}

// Box returns the drop's collision box.
func (d *Drop) Box() core.AABB {
	return core.BoxAt(d.Pos, d.Size, d.Size)
}

// Arena is the walled playfield. There is no bottom wall.
type Arena struct {
	Width, Height float64
	Wall          float64
}

// Walls returns the top, left and right wall boxes.
func (a Arena) Walls() [3]core.AABB {
	return [3]core.AABB{
		core.BoxAt(core.V(a.Width/2, a.Wall/2), a.Width, a.Wall),
		core.BoxAt(core.V(a.Wall/2, a.Height/2), a.Wall, a.Height),
		core.BoxAt(core.V(a.Width-a.Wall/2, a.Height/2), a.Wall, a.Height),
	}
}

// Center returns the middle of the arena.
func (a Arena) Center() core.Vec2 { return core.V(a.Width/2, a.Height/2) }
