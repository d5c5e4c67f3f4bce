package blockbreak

import (
	"math"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// CollideWalls bounces the ball off the side and top walls. Velocity signs are
// set from abs values so a ball still inside a wall next tick is not flipped
// back, and the position is clamped into the open area afterwards.
// lost is true once the ball's top edge has passed the arena bottom.
func CollideWalls(b *Ball, a Arena) (bounced, lost bool) {
	left := a.Wall + b.Radius
	right := a.Width - a.Wall - b.Radius
	top := a.Wall + b.Radius

	if b.Pos.X < left {
		b.Pos.X = left
		b.Vel.X = math.Abs(b.Vel.X)
		bounced = true
	} else if b.Pos.X > right {
		b.Pos.X = right
		b.Vel.X = -math.Abs(b.Vel.X)
		bounced = true
	}
	if b.Pos.Y < top {
		b.Pos.Y = top
		b.Vel.Y = math.Abs(b.Vel.Y)
		bounced = true
	}

	lost = b.Pos.Y-b.Radius > a.Height
	return bounced, lost
}

// BouncePaddle reflects a descending ball that overlaps the paddle. The exit
// angle depends on where it struck: the centre sends it straight up and the
// edges tilt it by up to maxAngle radians from vertical. Speed is preserved;
// a stopped ball leaves at fallbackSpeed.
func BouncePaddle(b *Ball, p *Paddle, maxAngle, fallbackSpeed float64) bool {
	if b.Vel.Y < 0 || !b.Box().Intersects(p.Box()) {
		return false
	}

	speed := b.Speed()
	if speed == 0 {
		speed = fallbackSpeed
	}

	var offset float64
	if p.Width > 0 {
		offset = core.ClampF((b.Pos.X-p.Pos.X)/(p.Width/2), -1, 1)
	}
	s, c := math.Sincos(offset * maxAngle)
	b.Vel = core.V(speed*s, -speed*c)
	b.Pos.Y = p.Pos.Y - p.Height/2 - b.Radius
	return true
}

// BlockHit is one ball impact. Destroyed is what Block.Hit reported, so a
// block that a blast takes later in the same tick is not credited twice.
type BlockHit struct {
	Block     *Block
	Destroyed bool
}

// ResolveBlocks handles a ball against every live block it overlaps and
// returns the hits it made this tick.
//
// A normal ball damages every overlapped block but reflects once, off the
// block it is buried deepest in, along that block's axis of least
// penetration (ties go to the vertical axis). A fire ball damages each
// non-steel block only when it first enters it and keeps its heading; steel
// still reflects it.
func ResolveBlocks(b *Ball, blocks []*Block, fire bool, flash float64) []BlockHit {
	box := b.Box()
	var overlapped []*Block
	for _, blk := range blocks {
		if blk.Alive() && box.Intersects(blk.Box) {
			overlapped = append(overlapped, blk)
		}
	}

	if !fire {
		b.inside = nil
		if len(overlapped) == 0 {
			return nil
		}
		reflectOff(b, deepest(box, overlapped))
		return hitAll(overlapped, flash, nil)
	}

	var entered, steel []*Block
	current := make(map[*Block]struct{}, len(overlapped))
	for _, blk := range overlapped {
		if blk.Kind == BlockSteel {
			steel = append(steel, blk)
			continue
		}
		current[blk] = struct{}{}
		if _, seen := b.inside[blk]; !seen {
			entered = append(entered, blk)
		}
	}
	b.inside = current

	hits := hitAll(entered, flash, nil)
	if len(steel) > 0 {
		reflectOff(b, deepest(box, steel))
		hits = hitAll(steel, flash, hits)
	}
	return hits
}

func hitAll(blocks []*Block, flash float64, hits []BlockHit) []BlockHit {
	for _, blk := range blocks {
		hits = append(hits, BlockHit{Block: blk, Destroyed: blk.Hit(flash)})
	}
	return hits
}

// deepest returns the block with the largest overlap area, first on ties.
func deepest(box core.AABB, blocks []*Block) *Block {
	var best *Block
	bestArea := -1.0
	for _, blk := range blocks {
		ox, oy := box.Overlap(blk.Box)
		if area := ox * oy; area > bestArea {
			best, bestArea = blk, area
		}
	}
	return best
}

// reflectOff points the ball away from blk on the axis of least penetration
// and moves it out of the block.
func reflectOff(b *Ball, blk *Block) {
	ox, oy := b.Box().Overlap(blk.Box)
	if ox < oy {
		if b.Pos.X < blk.Box.Center.X {
			b.Vel.X = -math.Abs(b.Vel.X)
			b.Pos.X -= ox
		} else {
			b.Vel.X = math.Abs(b.Vel.X)
			b.Pos.X += ox
		}
		return
	}
	if b.Pos.Y < blk.Box.Center.Y {
		b.Vel.Y = -math.Abs(b.Vel.Y)
		b.Pos.Y -= oy
	} else {
		b.Vel.Y = math.Abs(b.Vel.Y)
		b.Pos.Y += oy
	}
}

// Detonate destroys every breakable block within radius of a detonating
// explosive, chaining through any explosives it reaches. origin must already
// be destroyed. Each block is marked before it is queued, so it is returned
// and credited exactly once.
func Detonate(origin *Block, blocks []*Block, radius float64) []*Block {
	var destroyed []*Block
	queue := []*Block{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, blk := range blocks {
			if blk.Destroyed || !blk.Kind.Breakable() {
				continue
			}
			if blk.Box.Center.Dist(cur.Box.Center) > radius {
				continue
			}
			blk.Destroyed = true
			blk.HP = 0
			destroyed = append(destroyed, blk)
			if blk.Kind == BlockExplosive {
				queue = append(queue, blk)
			}
		}
	}
	return destroyed
}

// Cleared reports whether no breakable block is left. Steel does not count.
func Cleared(blocks []*Block) bool {
	for _, blk := range blocks {
		if blk.Alive() && blk.Kind.Breakable() {
			return false
		}
	}
	return true
}
