package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// Note lengths
const (
	jumpNote    = 60 * time.Millisecond
	passNote    = 40 * time.Millisecond
	pickupNote  = 250 * time.Millisecond
	crashNote   = 350 * time.Millisecond
	attackShort = 5 * time.Millisecond
)

// tone is a fixed-length periodic waveform.
type tone struct {
	freq  float64
	phase float64
	wave  Wave
	rate  beep.SampleRate
	left  int // samples still to produce
}

func newTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *tone {
	return &tone{freq: freq, wave: wave, rate: rate, left: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.left <= 0 {
		return 0, false
	}
	n = min(len(samples), t.left)
	for i := 0; i < n; i++ {
		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2*t.phase - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0], samples[i][1] = v, v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
	}
	t.left -= n
	return n, true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack followed by a linear decay to silence
// across the whole length of the wrapped streamer.
type shape struct {
	s      beep.Streamer
	pos    int
	attack int
	total  int
}

func newShape(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) *shape {
	return &shape{s: s, attack: rate.N(attack), total: rate.N(d)}
}

func (e *shape) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.0
		switch {
		case e.pos < e.attack:
			gain = float64(e.pos) / float64(e.attack)
		case e.pos < e.total:
			gain = float64(e.total-e.pos) / float64(e.total-e.attack)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

// withVolume scales s linearly; zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newShape(newTone(freq, d, wave, rate), d, attackShort, rate)
}

// Streamer builds the finite streamer for cue at the given sample rate.
// It returns nil for CueNone.
func Streamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		s = beep.Seq(
			note(523.25, jumpNote, WaveSquare, rate),
			note(783.99, jumpNote, WaveSquare, rate),
		)
	case CuePass:
		s = note(1046.5, passNote, WaveSine, rate)
	case CuePickup:
		s = beep.Take(rate.N(pickupNote), beep.Mix(
			withVolume(note(880, pickupNote, WaveSine, rate), 0.7),
			withVolume(note(1760, pickupNote, WaveSine, rate), 0.3),
		))
	case CueCrash:
		s = note(98, crashNote, WaveSaw, rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}

// Length returns how long cue plays.
func Length(c Cue) time.Duration {
	switch c {
	case CueJump:
		return 2 * jumpNote
	case CuePass:
		return passNote
	case CuePickup:
		return pickupNote
	case CueCrash:
		return crashNote
	default:
		return 0
	}
}
