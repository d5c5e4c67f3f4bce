package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// drain reads a finite streamer to the end.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		samples := drain(t, Tone(440, 50*time.Millisecond, wave, rate))
		assert.Len(t, samples, rate.N(50*time.Millisecond), "wave %d", wave)
		for _, s := range samples {
			require.LessOrEqual(t, math.Abs(s[0]), 1.0)
			require.Equal(t, s[0], s[1], "mono")
		}
	}
}

func TestSquareWaveIsBipolar(t *testing.T) {
	samples := drain(t, Tone(100, 20*time.Millisecond, WaveSquare, beep.SampleRate(8000)))
	for _, s := range samples {
		assert.Contains(t, []float64{-1, 1}, s[0])
	}
}

func TestShapeRampsAndDecays(t *testing.T) {
	rate := beep.SampleRate(1000)
	// a constant signal makes the envelope itself visible
	samples := drain(t, Shape(Tone(0, 200*time.Millisecond, WaveSquare, rate), 10*time.Millisecond, 50*time.Millisecond, rate))

	assert.Zero(t, samples[0][0])
	assert.InDelta(t, 0.5, samples[5][0], 1e-9)
	assert.InDelta(t, 1, samples[10][0], 1e-9)
	assert.InDelta(t, 0.5, samples[60][0], 0.02, "halved one half-life after the attack")
	assert.Less(t, samples[len(samples)-1][0], 0.1)
}

func TestEveryCueIsFinite(t *testing.T) {
	sounds := []core.Sound{
		core.SoundBounce, core.SoundBreak, core.SoundExplosion,
		core.SoundPowerUp, core.SoundGameOver, core.SoundLevelUp,
	}
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			st := Cue(s, sampleRate, 0.8)
			require.NotNil(t, st)
			samples := drain(t, st)
			assert.NotEmpty(t, samples)
			assert.Less(t, len(samples), sampleRate.N(time.Second))
		})
	}
	assert.Nil(t, Cue(core.Sound(0), sampleRate, 1))
}

func TestAdmitThrottlesRepeats(t *testing.T) {
	p := NewPlayer(1)
	now := time.Unix(0, 0)
	p.now = func() time.Time { return now }

	got := p.admit([]core.Sound{core.SoundBounce, core.SoundBreak})
	assert.Equal(t, []core.Sound{core.SoundBounce, core.SoundBreak}, got)

	now = now.Add(10 * time.Millisecond)
	assert.Equal(t, []core.Sound{core.SoundPowerUp}, p.admit([]core.Sound{core.SoundBounce, core.SoundPowerUp}))

	now = now.Add(minGap)
	assert.Equal(t, []core.Sound{core.SoundBounce}, p.admit([]core.Sound{core.SoundBounce}))
}

func TestPlayBeforeInitIsSilent(t *testing.T) {
	p := NewPlayer(1)
	assert.NotPanics(t, func() {
		p.Play(core.SoundBounce)
		p.Close()
	})
	assert.Empty(t, p.last)
}

func TestOpenMuted(t *testing.T) {
	sink := Open(true, 1, nil)
	assert.IsType(t, Silent{}, sink)
	sink.Play(core.SoundExplosion)
	sink.Close()
}
