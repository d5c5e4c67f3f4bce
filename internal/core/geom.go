// Package core provides the types shared by the simulation and the platform layer:
// geometry, input frames, sound cues and the character screen. It has no
// dependency on Bubble Tea so game logic stays pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec2 is a 2D vector in arena units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen rescales v to length n, keeping its direction.
// A zero vector stays zero; callers pick their own fallback direction.
func (v Vec2) WithLen(n float64) Vec2 {
	return v.Normalize().Scale(n)
}

// Rotate returns v rotated by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// AABB is an axis-aligned box described by its centre and half extents.
type AABB struct {
	Center Vec2
	Half   Vec2
}

// BoxAt builds an AABB from a centre point and full width/height.
func BoxAt(center Vec2, w, h float64) AABB {
	return AABB{Center: center, Half: Vec2{w / 2, h / 2}}
}

func (b AABB) Min() Vec2 { return b.Center.Sub(b.Half) }
func (b AABB) Max() Vec2 { return b.Center.Add(b.Half) }
func (b AABB) Width() float64 { return b.Half.X * 2 }
func (b AABB) Height() float64 { return b.Half.Y * 2 }

// Intersects reports strict overlap. Boxes that only touch do not intersect.
func (b AABB) Intersects(o AABB) bool {
	ox, oy := b.Overlap(o)
	return ox > 0 && oy > 0
}

// Overlap returns the penetration depth on each axis. Non-positive values mean
// the boxes are separated on that axis.
func (b AABB) Overlap(o AABB) (x, y float64) {
	x = b.Half.X + o.Half.X - math.Abs(b.Center.X-o.Center.X)
	y = b.Half.Y + o.Half.Y - math.Abs(b.Center.Y-o.Center.Y)
	return x, y
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
