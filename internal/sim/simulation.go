package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/faraday/internal/achievement"
	"github.com/verte-zerg/faraday/internal/game"
	"github.com/verte-zerg/faraday/internal/model"
)

const (
	// MaxFrameDelta caps the measured frame time after a stall.
	MaxFrameDelta = 250 * time.Millisecond

	MinTurns    = 1
	MaxTurns    = 10
	MinStrength = 0.5
	MaxStrength = 3.0
	StrengthInc = 0.5
)

// SoundSink consumes the discrete sounds a frame emits.
type SoundSink interface {
	Play(model.Sound)
}

// Simulation owns a run's State plus the process-wide achievements and game.
type Simulation struct {
	cfg   model.LabConfig
	state State
	rules []Rule

	tracker *achievement.Tracker
	game    *game.Machine
	sink    SoundSink
	clock   Clock
	logger  *zap.Logger

	lastFrame time.Time
	closed    bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithClock sets the clock frames are measured against.
func WithClock(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithSoundSink sets where emitted sounds go.
func WithSoundSink(sink SoundSink) Option {
	return func(s *Simulation) { s.sink = sink }
}

// WithGame sets the game machine, usually one wired to a ScoreStore.
func WithGame(m *game.Machine) Option {
	return func(s *Simulation) { s.game = m }
}

// WithTracker shares an achievement tracker across simulations.
func WithTracker(t *achievement.Tracker) Option {
	return func(s *Simulation) { s.tracker = t }
}

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(s *Simulation) { s.rules = rules }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// New creates a simulation for cfg.
func New(cfg model.LabConfig, opts ...Option) *Simulation {
	s := &Simulation{
		rules: DefaultRules,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.tracker == nil {
		s.tracker = achievement.NewTracker()
	}
	if s.game == nil {
		s.game = game.NewMachine(context.Background(), nil, s.logger)
	}
	s.cfg = normalizeConfig(cfg)
	s.state = NewState(s.cfg)
	return s
}

func normalizeConfig(cfg model.LabConfig) model.LabConfig {
	cfg.Turns = int(clamp(float64(cfg.Turns), MinTurns, MaxTurns))
	cfg.Strength = clamp(math.Round(cfg.Strength/StrengthInc)*StrengthInc, MinStrength, MaxStrength)
	if _, ok := model.ParseMagnetType(string(cfg.MagnetType)); !ok {
		cfg.MagnetType = model.MagnetBar
	}
	if m, ok := model.LookupMaterial(cfg.Material); ok {
		cfg.Material = m.Name
	} else {
		cfg.Material = model.ReferenceMaterial
	}
	return cfg
}

// Frame measures the time since the previous frame and advances by it.
// After Close it does nothing.
func (s *Simulation) Frame() []model.Sound {
	if s.closed {
		return nil
	}
	now := s.clock.Now()
	var dt time.Duration
	if !s.lastFrame.IsZero() {
		dt = now.Sub(s.lastFrame)
	}
	s.lastFrame = now
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	return s.Advance(dt)
}

// Advance steps the run by dt, applies unlocks, and dispatches sounds.
func (s *Simulation) Advance(dt time.Duration) []model.Sound {
	if s.closed {
		return nil
	}
	material, _ := model.LookupMaterial(s.cfg.Material)
	out := Step(&s.state, Input{
		Strength:     s.cfg.Strength,
		Conductivity: material.Conductivity,
		Turns:        s.cfg.Turns,
		SlowMotion:   s.cfg.SlowMotion,
		Score:        s.game.Session().Score,
	}, s.rules, dt)

	sounds := out.Sounds
	for _, id := range out.Unlocks {
		sounds = s.unlock(id, sounds)
	}
	sig := s.state.Signal
	s.game.Observe(sig.Brightness, sig.BulbOn())
	s.emit(sounds)
	return sounds
}

func (s *Simulation) unlock(id model.AchievementID, sounds []model.Sound) []model.Sound {
	if !s.tracker.Unlock(id) {
		return sounds
	}
	s.logger.Info("achievement unlocked", zap.String("id", string(id)))
	return append(sounds, model.SoundAchievement)
}

func (s *Simulation) emit(sounds []model.Sound) {
	if s.sink == nil || !s.cfg.SoundEnabled {
		return
	}
	for _, snd := range sounds {
		s.sink.Play(snd)
	}
}

// GameTick advances the game countdown by one second.
func (s *Simulation) GameTick(ctx context.Context) (game.Result, bool) {
	if s.closed {
		return game.Result{}, false
	}
	res, done := s.game.Tick(ctx)
	if !done {
		return res, false
	}
	var sounds []model.Sound
	if res.NewHigh {
		sounds = append(sounds, model.SoundHighScore)
	} else {
		sounds = append(sounds, model.SoundGameOver)
	}
	// Score-only rules see the final score; edge rules stay quiet on an unchanged frame.
	final := observe(s.state.Signal, res.Score)
	for _, id := range Evaluate(s.rules, final, final).Unlocks {
		sounds = s.unlock(id, sounds)
	}
	s.emit(sounds)
	return res, true
}

// StartGame begins a timed session.
func (s *Simulation) StartGame() {
	s.game.Start()
	s.emit([]model.Sound{model.SoundGameStart})
}

// StopGame abandons the running session.
func (s *Simulation) StopGame() {
	s.game.Stop()
}

// StartPreset hands the magnet to the named script.
func (s *Simulation) StartPreset(name string) error {
	script, ok := LookupScript(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	StartPreset(&s.state, script)
	s.logger.Debug("preset started", zap.String("preset", name))
	return nil
}

// PointerDown begins a drag if p hits the magnet.
func (s *Simulation) PointerDown(p model.Vec) bool {
	return PointerDown(&s.state, p)
}

// PointerMove drags the magnet.
func (s *Simulation) PointerMove(p model.Vec) {
	PointerMove(&s.state, p)
}

// PointerUp ends a drag.
func (s *Simulation) PointerUp() {
	PointerUp(&s.state)
}

// Notify applies a discrete view-layer notification.
func (s *Simulation) Notify(n Notice) []model.Sound {
	id, ok := noticeUnlocks[n]
	if !ok {
		return nil
	}
	sounds := s.unlock(id, nil)
	s.emit(sounds)
	return sounds
}

// Reset returns the run to its initial layout. Achievements and the high score persist.
func (s *Simulation) Reset() {
	s.state = NewState(s.cfg)
	s.lastFrame = time.Time{}
	s.logger.Debug("simulation reset")
}

// Close stops the simulation; later frames are no-ops.
func (s *Simulation) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Simulation) Closed() bool {
	return s.closed
}

// Config returns the current lab parameters.
func (s *Simulation) Config() model.LabConfig {
	return s.cfg
}

// Surface returns the simulation surface.
func (s *Simulation) Surface() Surface {
	return s.state.Surface
}

// SetTurns sets the coil turn count.
func (s *Simulation) SetTurns(n int) {
	s.cfg.Turns = int(clamp(float64(n), MinTurns, MaxTurns))
	s.state.Coil.Turns = s.cfg.Turns
}

// SetStrength sets the magnet strength multiplier.
func (s *Simulation) SetStrength(v float64) {
	s.cfg.Strength = clamp(math.Round(v/StrengthInc)*StrengthInc, MinStrength, MaxStrength)
}

// SetMagnetType swaps the magnet layout, keeping it on the surface.
func (s *Simulation) SetMagnetType(t model.MagnetType) {
	if _, ok := model.ParseMagnetType(string(t)); !ok || t == s.cfg.MagnetType {
		return
	}
	s.cfg.MagnetType = t
	s.state.Magnet.Type = t
	s.state.Magnet.Half = t.HalfExtent()
	s.state.Magnet.Pos = s.state.Surface.Clamp(s.state.Magnet.Pos, s.state.Magnet.Half)
	s.Notify(NoticeMagnetChanged)
}

// SetMaterial sets the coil material; unknown names are ignored.
func (s *Simulation) SetMaterial(name string) {
	m, ok := model.LookupMaterial(name)
	if !ok {
		return
	}
	s.cfg.Material = m.Name
	s.state.Coil.Material = m.Name
}

// SetSoundEnabled toggles audio cues.
func (s *Simulation) SetSoundEnabled(on bool) { s.cfg.SoundEnabled = on }

// SetParticlesEnabled toggles the electron-drift rendering.
func (s *Simulation) SetParticlesEnabled(on bool) { s.cfg.ParticlesEnabled = on }

// SetFieldLinesEnabled toggles the field-line rendering.
func (s *Simulation) SetFieldLinesEnabled(on bool) { s.cfg.FieldLinesEnabled = on }

// SetSlowMotion toggles slow brightness easing.
func (s *Simulation) SetSlowMotion(on bool) { s.cfg.SlowMotion = on }

// Telemetry snapshots the read-only view of the run.
func (s *Simulation) Telemetry() model.Telemetry {
	sig := s.state.Signal
	distance := "--"
	if sig.Primed {
		distance = fmt.Sprintf("%.1f", sig.Distance/model.PixelsPerCm)
	}
	session := s.game.Session()
	return model.Telemetry{
		BulbOn:           sig.BulbOn(),
		Distance:         distance,
		Current:          fmt.Sprintf("%.2f", sig.Current),
		FluxRate:         fmt.Sprintf("%.2f", sig.FluxRate),
		Brightness:       sig.Brightness,
		MagnetInsideCoil: sig.InsideCoil,
		Oscilloscope:     s.state.Waveform.Snapshot(),
		ScopeLatest:      s.state.Waveform.Latest(),
		History:          s.state.History.Points(),
		Achievements:     s.tracker.Snapshot(),
		UnlockedCount:    s.tracker.Count(),
		GameActive:       session.Active,
		GameScore:        session.Score,
		GameTime:         session.SecondsRemaining,
		GameHighScore:    s.game.HighScore(),
		Preset:           s.state.PresetName(),
		Magnet:           s.state.Magnet,
		Coil:             s.state.Coil,
		Config:           s.cfg,
	}
}
