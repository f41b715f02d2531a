package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/verte-zerg/faraday/internal/model"
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
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a finite tone of the given shape.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att = total / 2
		rel = total - att
	}
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.position >= releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; effects.Volume works in log2 steps.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped tone.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, noteAttack, d/2, rate)
}

// Voice builds the streamer for a sound at the given linear volume.
func Voice(snd model.Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch snd {
	case model.SoundCoilEnter:
		s = NewEnvelope(NewOscillator(0, whooshDuration, WaveNoise, rate), whooshDuration, whooshDuration/2, whooshDuration/2, rate)
		s = newVolume(s, 0.5)
	case model.SoundCoilExit:
		s = newVolume(note(220, 120*time.Millisecond, WaveSaw, rate), 0.4)
	case model.SoundBulbOn:
		s = beep.Mix(
			newVolume(note(880, bellDuration, WaveSine, rate), 0.7),
			newVolume(NewEnvelope(NewOscillator(1760, bellDuration, WaveSine, rate), bellDuration, noteAttack, bellDuration/4, rate), 0.3),
		)
	case model.SoundMaxPower:
		s = beep.Mix(
			newVolume(note(523.25, chordDuration, WaveSine, rate), 0.34),
			newVolume(note(659.25, chordDuration, WaveSine, rate), 0.33),
			newVolume(note(783.99, chordDuration, WaveSine, rate), 0.33),
		)
	case model.SoundAchievement:
		s = newVolume(beep.Seq(
			note(987.77, 80*time.Millisecond, WaveSquare, rate),
			note(1318.51, 240*time.Millisecond, WaveSquare, rate),
		), 0.3)
	case model.SoundGameStart:
		s = newVolume(beep.Seq(
			note(523.25, stepDuration, WaveSquare, rate),
			note(659.25, stepDuration, WaveSquare, rate),
			note(783.99, 2*stepDuration, WaveSquare, rate),
		), 0.3)
	case model.SoundGameOver:
		s = newVolume(beep.Seq(
			note(392, 2*stepDuration, WaveSaw, rate),
			note(261.63, 3*stepDuration, WaveSaw, rate),
		), 0.35)
	case model.SoundHighScore:
		s = newVolume(beep.Seq(
			note(523.25, stepDuration, WaveSquare, rate),
			note(659.25, stepDuration, WaveSquare, rate),
			note(783.99, stepDuration, WaveSquare, rate),
			note(1046.5, 3*stepDuration, WaveSquare, rate),
		), 0.3)
	default:
		return nil
	}
	return newVolume(s, vol)
}
