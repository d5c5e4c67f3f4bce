package config

import "math"

// Progression derives per-level parameters from the progression settings.
type Progression struct {
	cfg ProgressionConfig
}

// NewProgression creates a progression calculator.
func NewProgression(cfg ProgressionConfig) *Progression {
	return &Progression{cfg: cfg}
}

// Enabled reports whether ball speed scales with the level.
func (p *Progression) Enabled() bool {
	return p.cfg.Enabled
}

// SpeedMultiplier returns the ball speed factor for a level: 1.0 on level 1,
// plus SpeedStep for each level after that.
func (p *Progression) SpeedMultiplier(level int) float64 {
	if !p.cfg.Enabled || level <= 1 {
		return 1
	}
	return 1 + float64(level-1)*p.cfg.SpeedStep
}

// Procedural reports whether the level layout is generated rather than authored.
func (p *Progression) Procedural(level int) bool {
	return level >= p.cfg.ProceduralFrom
}

// SpecialShare is the fraction of generated blocks that are not Normal.
// It never decreases with the level and is capped at MaxSpecialShare.
func (p *Progression) SpecialShare(level int) float64 {
	if !p.Procedural(level) {
		return 0
	}
	share := p.cfg.SpecialShare + float64(level-p.cfg.ProceduralFrom)*p.cfg.SpecialShareStep
	return clampF(share, 0, p.cfg.MaxSpecialShare)
}

// SpecialCount returns how many of cells blocks should be special on a level.
func (p *Progression) SpecialCount(level, cells int) int {
	return int(math.Round(float64(cells) * p.SpecialShare(level)))
}

// MaxDurableHits returns the toughest durable block allowed on a level.
func (p *Progression) MaxDurableHits(level int) int {
	if p.cfg.ToughFrom > 0 && level >= p.cfg.ToughFrom {
		return 3
	}
	return 2
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
