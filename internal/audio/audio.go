// Package audio plays the game's sound cues. Cues are synthesised on the fly,
// so there are no asset files. When no output device is available the game
// runs silently.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/blockbreak/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)

	// repeats of one cue closer together than this are dropped
	minGap = 40 * time.Millisecond
)

// Sink consumes the sound cues of a step.
type Sink interface {
	Play(sounds ...core.Sound)
	Close()
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(...core.Sound) {}
func (Silent) Close() {}

// Player mixes cues onto the default output device.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	last   map[core.Sound]time.Time
	now    func() time.Time
	ready  bool
}

// NewPlayer creates an idle player. volume is linear, 1 is full scale.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		last:   make(map[core.Sound]time.Time),
		now:    time.Now,
	}
}

// Init opens the output device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues the cues. Unknown sounds and rapid repeats are skipped.
func (p *Player) Play(sounds ...core.Sound) {
	if len(sounds) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	var queue []beep.Streamer
	for _, s := range p.admit(sounds) {
		if st := Cue(s, sampleRate, p.volume); st != nil {
			queue = append(queue, st)
		}
	}
	if len(queue) == 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(queue...)
	speaker.Unlock()
}

// admit filters out cues repeated within minGap. Caller holds mu.
func (p *Player) admit(sounds []core.Sound) []core.Sound {
	now := p.now()
	var out []core.Sound
	for _, s := range sounds {
		if t, ok := p.last[s]; ok && now.Sub(t) < minGap {
			continue
		}
		p.last[s] = now
		out = append(out, s)
	}
	return out
}

// Close stops everything that is playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

// Open returns a working player, or Silent when muted or when the device
// cannot be opened. The failure is logged, not returned: sound is optional.
func Open(mute bool, volume float64, logger *log.Logger) Sink {
	if mute {
		return Silent{}
	}
	p := NewPlayer(volume)
	if err := p.Init(); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "error", err)
		}
		return Silent{}
	}
	return p
}
