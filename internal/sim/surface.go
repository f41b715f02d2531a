package sim

import (
	"math"

	"github.com/verte-zerg/faraday/internal/model"
)

// Surface is the simulation coordinate space, in pixels.
type Surface struct {
	Width  float64
	Height float64
}

// DefaultSurface is the surface the lab is laid out on.
var DefaultSurface = Surface{Width: 800, Height: 400}

const (
	coilX      = 500.0
	coilY      = 200.0
	coilRadius = 60.0
	magnetX    = 150.0
)

// Clamp keeps a box of the given half-extent centered at pos inside the surface.
func (s Surface) Clamp(pos, half model.Vec) model.Vec {
	return model.Vec{
		X: clamp(pos.X, half.X, s.Width-half.X),
		Y: clamp(pos.Y, half.Y, s.Height-half.Y),
	}
}

// Viewport is the display grid the surface is drawn onto.
type Viewport struct {
	Cols int
	Rows int
}

// ToSurface maps a display cell to the surface point at its center,
// compensating for the display scale.
func (v Viewport) ToSurface(col, row int, s Surface) model.Vec {
	if v.Cols <= 0 || v.Rows <= 0 {
		return model.Vec{}
	}
	return model.Vec{
		X: (float64(col) + 0.5) * s.Width / float64(v.Cols),
		Y: (float64(row) + 0.5) * s.Height / float64(v.Rows),
	}
}

// ToCell maps a surface point to the display cell containing it.
func (v Viewport) ToCell(p model.Vec, s Surface) (col, row int) {
	if v.Cols <= 0 || v.Rows <= 0 {
		return 0, 0
	}
	col = int(math.Floor(p.X * float64(v.Cols) / s.Width))
	row = int(math.Floor(p.Y * float64(v.Rows) / s.Height))
	col = int(clamp(float64(col), 0, float64(v.Cols-1)))
	row = int(clamp(float64(row), 0, float64(v.Rows-1)))
	return col, row
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
