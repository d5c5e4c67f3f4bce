package blockbreak

import "github.com/vovakirdan/blockbreak/internal/core"

// MoveBalls integrates every live ball by one step.
func MoveBalls(balls []*Ball, dt float64) {
	for _, b := range balls {
		if b.Lost {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}

// MovePaddle applies held direction keys, or an absolute pointer position
// when one is present, and keeps the paddle between the side walls. The
// pointer is a fraction of the full arena width, the same span the screen
// shows.
func MovePaddle(p *Paddle, in core.InputFrame, speed, dt float64, a Arena) {
	if in.HasPointer {
		p.Pos.X = in.Pointer * a.Width
	} else {
		p.Pos.X += in.Horizontal() * speed * dt
	}
	ClampPaddle(p, a)
}

// ClampPaddle keeps the whole paddle inside the walls.
func ClampPaddle(p *Paddle, a Arena) {
	lo := a.Wall + p.Width/2
	hi := a.Width - a.Wall - p.Width/2
	if lo > hi {
		p.Pos.X = a.Width / 2
		return
	}
	p.Pos.X = core.ClampF(p.Pos.X, lo, hi)
}

// MoveDrops lets capsules fall and marks the ones that left the arena.
func MoveDrops(drops []*Drop, dt, arenaH float64) {
	for _, d := range drops {
		if d.Gone {
			continue
		}
		d.Pos = d.Pos.Add(d.Vel.Scale(dt))
		if d.Pos.Y-d.Size/2 > arenaH {
			d.Gone = true
		}
	}
}
