package physics

import (
	"math"
	"testing"

	"github.com/verte-zerg/faraday/internal/model"
)

var coil = model.Vec{X: 400, Y: 200}

func TestFluxDecaysWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.0; d <= 400; d += 2.5 {
		f := Flux(model.Vec{X: coil.X - d, Y: coil.Y}, coil, 1.0)
		if f > prev {
			t.Fatalf("flux increased with distance at d=%.1f: %f > %f", d, f, prev)
		}
		prev = f
	}
}

func TestFluxFiniteAtZeroDistance(t *testing.T) {
	f := Flux(coil, coil, 3.0)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		t.Fatalf("expected finite flux at zero distance, got %f", f)
	}
	if f != FluxGain*3.0/Epsilon {
		t.Fatalf("unexpected flux at zero distance: %f", f)
	}
}

func TestTargetBrightnessClamped(t *testing.T) {
	for _, current := range []float64{-5, 0, BulbOnCurrent / 2, 1, 1e9, math.Inf(1), math.NaN()} {
		b := TargetBrightness(current)
		if b < 0 || b > 1 {
			t.Fatalf("brightness %f out of range for current %f", b, current)
		}
	}
	if TargetBrightness(1e9) != 1 {
		t.Fatalf("expected saturation at huge current")
	}
}

func TestEaseBrightnessRisesFasterThanItFalls(t *testing.T) {
	up := EaseBrightness(0.5, 1, false) - 0.5
	down := 0.5 - EaseBrightness(0.5, 0, false)
	if up <= down {
		t.Fatalf("expected rise %f > fall %f", up, down)
	}
	slowUp := EaseBrightness(0.5, 1, true) - 0.5
	if slowUp >= up {
		t.Fatalf("expected slow motion to ease slower: %f >= %f", slowUp, up)
	}
}

func TestEaseBrightnessSnapsToDark(t *testing.T) {
	b := 1.0
	for i := 0; i < 500; i++ {
		b = EaseBrightness(b, 0, false)
	}
	if b != 0 {
		t.Fatalf("expected brightness to reach exactly 0, got %g", b)
	}
}

func TestEaseBrightnessClampsExtremes(t *testing.T) {
	for _, tc := range [][2]float64{{-3, 7}, {7, -3}, {math.NaN(), 1}, {0.4, math.Inf(1)}} {
		b := EaseBrightness(tc[0], tc[1], false)
		if b < 0 || b > 1 || math.IsNaN(b) {
			t.Fatalf("EaseBrightness(%v, %v) = %v out of range", tc[0], tc[1], b)
		}
	}
}

func TestInsideCoilStrictBoundary(t *testing.T) {
	radius := 60.0
	edge := model.Vec{X: coil.X + radius + InsideMargin, Y: coil.Y}
	if InsideCoil(edge, coil, radius) {
		t.Fatalf("expected boundary distance to be outside")
	}
	justIn := model.Vec{X: edge.X - 0.001, Y: coil.Y}
	if !InsideCoil(justIn, coil, radius) {
		t.Fatalf("expected point just inside the margin to be inside")
	}
}

func TestAdvanceStationaryConverges(t *testing.T) {
	in := Input{
		Magnet:       model.Vec{X: 300, Y: 200},
		Coil:         coil,
		CoilRadius:   60,
		Strength:     1,
		Conductivity: 1,
		Turns:        5,
	}
	s := Signal{FluxRate: 10, Brightness: 1}
	s = Advance(s, in)
	for i := 0; i < 120; i++ {
		s = Advance(s, in)
	}
	if s.FluxRate > 1e-6 {
		t.Fatalf("expected flux rate to decay toward 0, got %g", s.FluxRate)
	}
	if s.Brightness != 0 {
		t.Fatalf("expected bulb dark when stationary, got %g", s.Brightness)
	}
}

func TestAdvanceFirstFrameHasNoSpike(t *testing.T) {
	in := Input{
		Magnet:       model.Vec{X: coil.X - 5, Y: coil.Y},
		Coil:         coil,
		CoilRadius:   60,
		Strength:     3,
		Conductivity: 1,
		Turns:        10,
	}
	s := Advance(Signal{}, in)
	if s.FluxRate != 0 || s.Current != 0 {
		t.Fatalf("expected unprimed frame to report zero rate, got rate=%g current=%g", s.FluxRate, s.Current)
	}
	if !s.Primed {
		t.Fatalf("expected signal to be primed after first frame")
	}
}

func TestAdvanceApproachLightsBulb(t *testing.T) {
	in := Input{Coil: coil, CoilRadius: 60, Strength: 1, Conductivity: 1, Turns: 5}
	var s Signal
	for frame := 0; frame <= 60; frame++ {
		d := 100 - 90*float64(frame)/60
		in.Magnet = model.Vec{X: coil.X - d, Y: coil.Y}
		s = Advance(s, in)
	}
	if !s.BulbOn() {
		t.Fatalf("expected bulb on after approach, current=%g", s.Current)
	}
	if s.Current <= BulbOnCurrent {
		t.Fatalf("expected current above bulb-on threshold, got %g", s.Current)
	}
}
