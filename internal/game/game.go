// Package game implements the timed scoring mode.
package game

import (
	"context"
	"math"

	"go.uber.org/zap"
)

const (
	// SessionSeconds is the length of a game.
	SessionSeconds = 60
	// PointsPerBrightness converts brightness in [0,1] into points per tick.
	PointsPerBrightness = 10
)

// ScoreStore persists the single high score.
type ScoreStore interface {
	HighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}

// Session is the state of the current or last game.
type Session struct {
	Active           bool
	SecondsRemaining int
	Score            int
}

// Result describes a finished session.
type Result struct {
	Score     int
	HighScore int
	NewHigh   bool
}

// Machine is the Idle → Active → Idle game state machine.
type Machine struct {
	store  ScoreStore
	logger *zap.Logger

	session   Session
	highScore int

	brightness float64
	bulbOn     bool
}

// NewMachine loads the high score from store. A failed or missing read counts as zero.
func NewMachine(ctx context.Context, store ScoreStore, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Machine{store: store, logger: logger}
	if store == nil {
		return m
	}
	high, err := store.HighScore(ctx)
	if err != nil {
		logger.Warn("failed to read high score, using 0", zap.Error(err))
		return m
	}
	if high > 0 {
		m.highScore = high
	}
	return m
}

// Start begins a new session, discarding any running one.
func (m *Machine) Start() {
	m.session = Session{Active: true, SecondsRemaining: SessionSeconds}
	m.logger.Debug("game started")
}

// Stop abandons the running session without touching the high score.
func (m *Machine) Stop() {
	if !m.session.Active {
		return
	}
	m.session.Active = false
	m.logger.Debug("game abandoned", zap.Int("score", m.session.Score))
}

// Observe records the latest frame's bulb state; it is sampled on the next Tick.
func (m *Machine) Observe(brightness float64, bulbOn bool) {
	m.brightness = brightness
	m.bulbOn = bulbOn
}

// Tick advances the one-second countdown. finished is true on the tick that ends the session.
func (m *Machine) Tick(ctx context.Context) (res Result, finished bool) {
	if !m.session.Active {
		return Result{}, false
	}
	if m.bulbOn {
		m.session.Score += int(math.Floor(m.brightness * PointsPerBrightness))
	}
	m.session.SecondsRemaining--
	if m.session.SecondsRemaining > 0 {
		return Result{}, false
	}
	return m.finish(ctx), true
}

func (m *Machine) finish(ctx context.Context) Result {
	m.session.Active = false
	m.session.SecondsRemaining = 0
	res := Result{Score: m.session.Score, HighScore: m.highScore}
	if m.session.Score <= m.highScore {
		m.logger.Info("game finished", zap.Int("score", res.Score), zap.Int("high_score", m.highScore))
		return res
	}
	m.highScore = m.session.Score
	res.HighScore = m.highScore
	res.NewHigh = true
	m.logger.Info("new high score", zap.Int("score", res.Score))
	if m.store != nil {
		if err := m.store.SaveHighScore(ctx, m.highScore); err != nil {
			m.logger.Warn("failed to save high score", zap.Error(err))
		}
	}
	return res
}

// Session returns the current session state.
func (m *Machine) Session() Session {
	return m.session
}

// HighScore returns the best completed score.
func (m *Machine) HighScore() int {
	return m.highScore
}
