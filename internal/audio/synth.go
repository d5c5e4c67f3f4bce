package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq   float64
	phase  float64
	length int
	pos    int
	wave   Wave
	rate   beep.SampleRate
	noise  *rand.Rand
}

// Tone returns a fixed-length oscillator. Noise ignores freq.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	o := &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
	if wave == WaveNoise {
		o.noise = rand.New(rand.NewPCG(uint64(freq*1000)+1, 7)) //#nosec G404 -- audio noise
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential tail.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	decay   float64 // per-sample multiplier after the attack
	current float64
}

// Shape wraps s with an attack ramp and an exponential decay whose level
// halves every halfLife.
func Shape(s beep.Streamer, attack, halfLife time.Duration, rate beep.SampleRate) beep.Streamer {
	e := &envelope{s: s, attack: rate.N(attack), current: 1}
	if n := rate.N(halfLife); n > 0 {
		e.decay = math.Pow(0.5, 1/float64(n))
	} else {
		e.decay = 1
	}
	return e
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.current
		if e.pos < e.attack {
			vol *= float64(e.pos) / float64(e.attack)
		} else {
			e.current *= e.decay
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a stream linearly. Zero or less is silence.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func notes(rate beep.SampleRate, wave Wave, d time.Duration, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		parts[i] = Shape(Tone(f, d, wave, rate), 3*time.Millisecond, d/2, rate)
	}
	return beep.Seq(parts...)
}

// Cue synthesises the streamer for a sound at the given linear volume.
// It returns nil for sounds without a cue.
func Cue(s core.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case core.SoundBounce:
		st = Shape(Tone(660, 45*time.Millisecond, WaveSine, rate), 2*time.Millisecond, 15*time.Millisecond, rate)
	case core.SoundBreak:
		st = gain(notes(rate, WaveSquare, 35*time.Millisecond, 880, 1320), 0.5)
	case core.SoundExplosion:
		d := 300 * time.Millisecond
		st = beep.Mix(
			Shape(Tone(0, d, WaveNoise, rate), time.Millisecond, 60*time.Millisecond, rate),
			gain(Shape(Tone(55, d, WaveSine, rate), time.Millisecond, 90*time.Millisecond, rate), 0.8),
		)
	case core.SoundPowerUp:
		st = notes(rate, WaveSine, 60*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
	case core.SoundGameOver:
		st = gain(notes(rate, WaveSaw, 140*time.Millisecond, 392, 329.63, 261.63, 196), 0.6)
	case core.SoundLevelUp:
		st = gain(notes(rate, WaveSquare, 90*time.Millisecond, 523.25, 659.25, 783.99, 1046.5, 1318.5), 0.5)
	default:
		return nil
	}
	return gain(st, volume)
}
