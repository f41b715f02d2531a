// Package sim runs the induction lab: the per-frame step, pointer and preset
// control of the magnet, event rules, and the drivers that schedule frames.
package sim

import (
	"time"

	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/physics"
	"github.com/verte-zerg/faraday/internal/signal"
)

// State is everything a run carries from frame to frame.
type State struct {
	Surface  Surface
	Magnet   model.Magnet
	Coil     model.Coil
	Signal   physics.Signal
	Waveform signal.Waveform
	History  signal.History
	Elapsed  time.Duration
	Preset   *PresetRun

	grab model.Vec   // pointer offset from the magnet center while dragging
	prev Observation // last frame's rule inputs
}

// NewState lays out a fresh run for cfg.
func NewState(cfg model.LabConfig) State {
	surface := DefaultSurface
	mt := cfg.MagnetType
	if mt == "" {
		mt = model.MagnetBar
	}
	half := mt.HalfExtent()
	return State{
		Surface: surface,
		Magnet: model.Magnet{
			Pos:  surface.Clamp(model.Vec{X: magnetX, Y: coilY}, half),
			Half: half,
			Type: mt,
		},
		Coil: model.Coil{
			Center:   model.Vec{X: coilX, Y: coilY},
			Radius:   coilRadius,
			Turns:    cfg.Turns,
			Material: cfg.Material,
		},
	}
}

// PresetName returns the active preset, or "" when the pointer owns the magnet.
func (s *State) PresetName() string {
	if s.Preset == nil {
		return ""
	}
	return s.Preset.Script.Name
}
