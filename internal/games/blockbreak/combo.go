package blockbreak

import "github.com/vovakirdan/blockbreak/internal/config"

// Popup is the floating "xN +points" text shown after a combo hit.
type Popup struct {
	Multiplier int
	Points     int
	Remaining  float64
	Duration   float64
}

// Visible reports whether the popup should be drawn. Single hits are not announced.
func (p Popup) Visible() bool {
	return p.Remaining > 0 && p.Multiplier >= 2
}

// Alpha is the fraction of the fade left, from 1 down to 0.
func (p Popup) Alpha() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return p.Remaining / p.Duration
}

// Combo tracks consecutive destructions inside a rolling time window.
type Combo struct {
	Count      int
	Multiplier int
	Remaining  float64
	Best       int
	Popup      Popup

	window   float64
	step     int
	maxMult  int
	popupDur float64
}

// NewCombo creates an idle tracker.
func NewCombo(cfg config.ComboConfig) *Combo {
	c := &Combo{
		window:   cfg.Window,
		step:     max(1, cfg.Step),
		maxMult:  max(1, cfg.MaxMultiplier),
		popupDur: cfg.PopupDuration,
	}
	c.Reset()
	return c
}

// Register counts one destroyed block, restarts the window and returns the
// multiplier to score it with.
func (c *Combo) Register() int {
	c.Count++
	c.Multiplier = min(c.maxMult, 1+(c.Count-1)/c.step)
	c.Remaining = c.window
	c.Best = max(c.Best, c.Count)
	return c.Multiplier
}

// ShowPopup starts the popup for a just-scored block.
func (c *Combo) ShowPopup(points int) {
	c.Popup = Popup{
		Multiplier: c.Multiplier,
		Points:     points,
		Remaining:  c.popupDur,
		Duration:   c.popupDur,
	}
}

// Tick advances the window and the popup fade. It reports whether a streak
// ran out this tick.
func (c *Combo) Tick(dt float64) bool {
	if c.Popup.Remaining > 0 {
		c.Popup.Remaining = max(0, c.Popup.Remaining-dt)
	}
	if c.Count == 0 {
		return false
	}
	c.Remaining -= dt
	if c.Remaining > 0 {
		return false
	}
	c.Count = 0
	c.Multiplier = 1
	c.Remaining = 0
	return true
}

// Reset drops any streak and popup. Best is kept.
func (c *Combo) Reset() {
	c.Count = 0
	c.Multiplier = 1
	c.Remaining = 0
	c.Popup = Popup{}
}
