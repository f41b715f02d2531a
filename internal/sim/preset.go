package sim

import (
	"math"
	"time"

	"github.com/verte-zerg/faraday/internal/model"
)

// Script is a time-parameterised magnet trajectory.
type Script struct {
	Name     string
	Duration time.Duration
	// Position returns the magnet center t seconds into the script.
	Position func(t float64, coil model.Vec) model.Vec
}

// PresetRun is an active script and how far into it the run is.
type PresetRun struct {
	Script  Script
	Elapsed time.Duration
}

var scripts = []Script{
	{
		Name:     "through",
		Duration: 4 * time.Second,
		Position: func(t float64, coil model.Vec) model.Vec {
			return model.Vec{X: coil.X - 250*math.Cos(2*math.Pi*t/4), Y: coil.Y}
		},
	},
	{
		Name:     "fast",
		Duration: 3 * time.Second,
		Position: func(t float64, coil model.Vec) model.Vec {
			return model.Vec{X: coil.X - 200*math.Cos(2*math.Pi*1.5*t), Y: coil.Y}
		},
	},
	{
		Name:     "approach",
		Duration: 5 * time.Second,
		Position: func(t float64, coil model.Vec) model.Vec {
			return model.Vec{X: coil.X - 100 - 100*(1+math.Cos(2*math.Pi*t/5)), Y: coil.Y}
		},
	},
}

// LookupScript returns the named preset.
func LookupScript(name string) (Script, bool) {
	for _, s := range scripts {
		if s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}

// ScriptNames lists presets in menu order.
func ScriptNames() []string {
	names := make([]string, len(scripts))
	for i, s := range scripts {
		names[i] = s.Name
	}
	return names
}

// StartPreset hands the magnet to script, ending any drag.
func StartPreset(s *State, script Script) {
	PointerUp(s)
	s.Preset = &PresetRun{Script: script}
	s.Magnet.Pos = s.Surface.Clamp(script.Position(0, s.Coil.Center), s.Magnet.Half)
}

// advancePreset moves the magnet along the active script and returns control
// to the pointer once the script has run its duration.
func advancePreset(s *State, dt time.Duration) {
	run := s.Preset
	run.Elapsed += dt
	t := run.Elapsed
	if t > run.Script.Duration {
		t = run.Script.Duration
	}
	s.Magnet.Pos = s.Surface.Clamp(run.Script.Position(t.Seconds(), s.Coil.Center), s.Magnet.Half)
	if run.Elapsed >= run.Script.Duration {
		s.Preset = nil
	}
}
