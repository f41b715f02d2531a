// Package audio synthesises the lab's sound cues and plays them on the
// system speaker. Without a working output device it stays silent.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/verte-zerg/faraday/internal/model"
)

const (
	SampleRate = beep.SampleRate(44100)

	bufferDuration = 100 * time.Millisecond
	noteAttack     = 5 * time.Millisecond
	whooshDuration = 250 * time.Millisecond
	bellDuration   = 400 * time.Millisecond
	chordDuration  = 500 * time.Millisecond
	stepDuration   = 90 * time.Millisecond
)

// Output is an audio device.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Clear() { speaker.Clear() }

// Player plays sounds on an Output. The device is opened in the background
// by Open, or by the first Play; sounds played before it is ready are dropped.
type Player struct {
	mu      sync.Mutex
	out     Output
	logger  *zap.Logger
	volume  float64
	enabled bool
	opening bool
	opened  bool
	silent  bool
	ready   chan struct{} // closed once the device opened or failed
}

// Option configures a Player.
type Option func(*Player)

// WithOutput replaces the system speaker.
func WithOutput(out Output) Option {
	return func(p *Player) { p.out = out }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithVolume sets the master volume, 0 to 1.
func WithVolume(v float64) Option {
	return func(p *Player) {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		p.volume = v
	}
}

// NewPlayer returns an enabled player. The device is not touched until Open or the first Play.
func NewPlayer(opts ...Option) *Player {
	p := &Player{out: speakerOutput{}, volume: 0.8, enabled: true, ready: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Open starts initialising the device on its own goroutine. Later calls are no-ops.
func (p *Player) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openLocked()
}

func (p *Player) openLocked() {
	if p.opening || p.opened || p.silent {
		return
	}
	p.opening = true
	go p.openDevice()
}

func (p *Player) openDevice() {
	err := p.out.Init(SampleRate, SampleRate.N(bufferDuration))

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(p.ready)
	p.opening = false
	if err != nil {
		p.silent = true
		p.logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return
	}
	p.opened = true
}

// Play synthesises and plays snd. It never waits for the device.
func (p *Player) Play(snd model.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.silent {
		return
	}
	if !p.opened {
		p.openLocked()
		return
	}
	s := Voice(snd, SampleRate, p.volume)
	if s == nil {
		return
	}
	p.out.Play(s)
}

// SetEnabled turns playback on or off. Disabling drops queued sounds.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
	if !on && p.opened {
		p.out.Clear()
	}
}

// Enabled reports whether playback is on.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Silent reports whether the device failed to open.
func (p *Player) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.silent
}

// Close stops any playing sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opened {
		p.out.Clear()
	}
	p.enabled = false
}
