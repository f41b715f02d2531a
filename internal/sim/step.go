package sim

import (
	"time"

	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/physics"
)

// Input is the per-frame parameters the step reads besides State.
type Input struct {
	Strength     float64
	Conductivity float64
	Turns        int
	SlowMotion   bool
	Score        int
}

// Step advances s by dt: preset motion, kernel, buffers, then rules.
func Step(s *State, in Input, rules []Rule, dt time.Duration) Outcome {
	if dt < 0 {
		dt = 0
	}
	s.Elapsed += dt
	if s.Preset != nil {
		advancePreset(s, dt)
	}

	s.Signal = physics.Advance(s.Signal, physics.Input{
		Magnet:       s.Magnet.Pos,
		Coil:         s.Coil.Center,
		CoilRadius:   s.Coil.Radius,
		Strength:     in.Strength,
		Conductivity: in.Conductivity,
		Turns:        in.Turns,
		SlowMotion:   in.SlowMotion,
	})
	s.Waveform.Push(s.Signal.Current)
	if s.History.Observe(dt) {
		s.History.Append(model.HistoryPoint{
			Time:     s.Elapsed.Seconds(),
			Current:  s.Signal.Current,
			FluxRate: s.Signal.FluxRate,
			Distance: s.Signal.Distance / model.PixelsPerCm,
		})
	}

	cur := observe(s.Signal, in.Score)
	out := Evaluate(rules, s.prev, cur)
	s.prev = cur
	return out
}
