// Package physics implements the induction kernel: a flux proxy, its smoothed
// rate of change, and the current and bulb brightness derived from it.
package physics

import (
	"math"

	"github.com/verte-zerg/faraday/internal/model"
)

// Input is everything the kernel reads for one frame. Callers clamp values.
type Input struct {
	Magnet       model.Vec
	Coil         model.Vec
	CoilRadius   float64
	Strength     float64
	Conductivity float64
	Turns        int
	SlowMotion   bool
}

// Signal is the derived state of one frame.
type Signal struct {
	Flux       float64
	FluxRate   float64 // smoothed |Δflux| per frame
	Current    float64
	Brightness float64
	InsideCoil bool
	Distance   float64 // px
	Primed     bool    // Flux holds a previous sample
}

// BulbOn reports whether the filament is lit.
func (s Signal) BulbOn() bool {
	return s.Brightness > 0
}

// Flux returns the inverse-square flux proxy for a magnet at distance from the coil.
func Flux(magnet, coil model.Vec, strength float64) float64 {
	return FluxGain * strength / (magnet.Dist2(coil) + Epsilon)
}

// SmoothRate applies the single-pole low-pass filter to a flux delta.
func SmoothRate(prev, delta float64) float64 {
	return prev*SmoothingRetain + math.Abs(delta)*SmoothingGain
}

// Current converts the smoothed flux rate to the induced current.
func Current(smoothed, conductivity float64, turns int) float64 {
	return smoothed * conductivity * float64(turns) / CurrentScale
}

// TargetBrightness is the brightness the filament eases toward for a current.
func TargetBrightness(current float64) float64 {
	if math.IsNaN(current) || current < BulbOnCurrent {
		return 0
	}
	return clamp01(current / FullBrightnessCurrent)
}

// EaseBrightness moves prev toward target, rising faster than it falls.
func EaseBrightness(prev, target float64, slow bool) float64 {
	prev = clamp01(prev)
	target = clamp01(target)
	rate := FallRate
	if target > prev {
		rate = RiseRate
	}
	if slow {
		rate *= SlowMotionFactor
	}
	next := prev + (target-prev)*rate
	if target == 0 && next < BrightnessFloor {
		return 0
	}
	return clamp01(next)
}

// InsideCoil reports whether the magnet center is within the coil's capture radius.
func InsideCoil(magnet, coil model.Vec, radius float64) bool {
	return magnet.Dist(coil) < radius+InsideMargin
}

// Advance computes the next frame's signal from the previous one.
func Advance(prev Signal, in Input) Signal {
	flux := Flux(in.Magnet, in.Coil, in.Strength)
	delta := 0.0
	if prev.Primed {
		delta = flux - prev.Flux
	}
	rate := SmoothRate(prev.FluxRate, delta)
	current := Current(rate, in.Conductivity, in.Turns)
	return Signal{
		Flux:       flux,
		FluxRate:   rate,
		Current:    current,
		Brightness: EaseBrightness(prev.Brightness, TargetBrightness(current), in.SlowMotion),
		InsideCoil: InsideCoil(in.Magnet, in.Coil, in.CoilRadius),
		Distance:   in.Magnet.Dist(in.Coil),
		Primed:     true,
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
