package blockbreak

import (
	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
)

// PowerUpKind is a collectible effect.
type PowerUpKind uint8

const (
	PowerWide PowerUpKind = iota
	PowerMulti
	PowerSlow
	PowerFire
	powerUpCount
)

// String returns the display name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerWide:
		return "Wide"
	case PowerMulti:
		return "Multi"
	case PowerSlow:
		return "Slow"
	case PowerFire:
		return "Fire"
	default:
		return "?"
	}
}

// Glyph returns the capsule character.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerWide:
		return 'W'
	case PowerMulti:
		return 'M'
	case PowerSlow:
		return 'S'
	case PowerFire:
		return 'F'
	default:
		return '?'
	}
}

// Color returns the capsule colour.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerWide:
		return core.ColorBrightGreen
	case PowerMulti:
		return core.ColorBrightCyan
	case PowerSlow:
		return core.ColorBrightBlue
	case PowerFire:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// ActiveEffect is one running effect. Permanent effects never time out and
// are removed by the world when their condition ends.
type ActiveEffect struct {
	Kind      PowerUpKind
	Remaining float64
	Permanent bool
}

// EffectSet holds at most one effect per kind, in activation order.
// Different kinds stack; the same kind refreshes.
type EffectSet struct {
	items []ActiveEffect
}

func (s *EffectSet) index(kind PowerUpKind) int {
	for i, e := range s.items {
		if e.Kind == kind {
			return i
		}
	}
	return -1
}

// Add starts a timed effect, or restarts its full duration if it is already
// running. It reports whether it was a refresh.
func (s *EffectSet) Add(kind PowerUpKind, duration float64) bool {
	if i := s.index(kind); i >= 0 {
		s.items[i].Remaining = duration
		s.items[i].Permanent = false
		return true
	}
	s.items = append(s.items, ActiveEffect{Kind: kind, Remaining: duration})
	return false
}

// AddPermanent records an effect without a timer.
func (s *EffectSet) AddPermanent(kind PowerUpKind) {
	if i := s.index(kind); i >= 0 {
		s.items[i].Permanent = true
		return
	}
	s.items = append(s.items, ActiveEffect{Kind: kind, Permanent: true})
}

// Has reports whether kind is active.
func (s *EffectSet) Has(kind PowerUpKind) bool { return s.index(kind) >= 0 }

// Remaining returns the seconds left on kind, or 0.
func (s *EffectSet) Remaining(kind PowerUpKind) float64 {
	if i := s.index(kind); i >= 0 {
		return s.items[i].Remaining
	}
	return 0
}

// Remove deletes kind and reports whether it was present.
func (s *EffectSet) Remove(kind PowerUpKind) bool {
	i := s.index(kind)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Tick counts timed effects down and removes the ones that ran out,
// returning their kinds in activation order.
func (s *EffectSet) Tick(dt float64) []PowerUpKind {
	var expired []PowerUpKind
	kept := s.items[:0]
	for _, e := range s.items {
		if !e.Permanent {
			e.Remaining -= dt
			if e.Remaining <= 0 {
				expired = append(expired, e.Kind)
				continue
			}
		}
		kept = append(kept, e)
	}
	s.items = kept
	return expired
}

// List returns a copy of the active effects.
func (s *EffectSet) List() []ActiveEffect {
	return append([]ActiveEffect(nil), s.items...)
}

// PowerUps owns falling capsules and active effects.
type PowerUps struct {
	Drops   []*Drop
	Effects EffectSet

	cfg config.PowerUpsConfig
	rng *RNG
}

// NewPowerUps creates a manager drawing from rng.
func NewPowerUps(cfg config.PowerUpsConfig, rng *RNG) *PowerUps {
	return &PowerUps{cfg: cfg, rng: rng}
}

// Duration returns the configured duration of a timed kind.
func (m *PowerUps) Duration(kind PowerUpKind) float64 {
	switch kind {
	case PowerWide:
		return m.cfg.WideDuration
	case PowerSlow:
		return m.cfg.SlowDuration
	case PowerFire:
		return m.cfg.FireDuration
	default:
		return 0
	}
}

// TrySpawn rolls the drop chance for a destroyed block at pos and, on
// success, drops a uniformly chosen capsule.
func (m *PowerUps) TrySpawn(pos core.Vec2) (*Drop, bool) {
	if !m.rng.Chance(m.cfg.DropChance) {
		return nil, false
	}
	d := &Drop{
		Kind: PowerUpKind(m.rng.Intn(int(powerUpCount))), //#nosec G115 -- small enum
		Pos:  pos,
		Vel:  core.V(0, m.cfg.FallSpeed),
		Size: m.cfg.Size,
	}
	m.Drops = append(m.Drops, d)
	return d, true
}

// Update moves the capsules.
func (m *PowerUps) Update(dt, arenaH float64) {
	MoveDrops(m.Drops, dt, arenaH)
}

// Catch collects every capsule touching the paddle.
func (m *PowerUps) Catch(p *Paddle) []PowerUpKind {
	var caught []PowerUpKind
	box := p.Box()
	for _, d := range m.Drops {
		if !d.Gone && box.Intersects(d.Box()) {
			d.Gone = true
			caught = append(caught, d.Kind)
		}
	}
	return caught
}

// Compact drops capsules marked gone.
func (m *PowerUps) Compact() {
	kept := m.Drops[:0]
	for _, d := range m.Drops {
		if !d.Gone {
			kept = append(kept, d)
		}
	}
	clear(m.Drops[len(kept):])
	m.Drops = kept
}
