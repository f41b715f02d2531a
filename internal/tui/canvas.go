package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/sim"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellField
	cellCoil
	cellElectron
	cellNorth
	cellSouth
)

const (
	electronCount = 8
	fieldLineRuns = 3
)

var (
	fieldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3F5A7A"))
	electronStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD4FF")).Bold(true)
	northStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	southStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D8DFF")).Bold(true)
)

// labScene is what the canvas draws for one frame.
type labScene struct {
	magnet     model.Magnet
	coil       model.Coil
	strength   float64
	fieldLines bool
	particles  bool
	phase      float64 // electron drift angle, radians
}

func sceneFrom(tel model.Telemetry, phase float64) labScene {
	return labScene{
		magnet:     tel.Magnet,
		coil:       tel.Coil,
		strength:   tel.Config.Strength,
		fieldLines: tel.Config.FieldLinesEnabled,
		particles:  tel.Config.ParticlesEnabled,
		phase:      phase,
	}
}

// renderCanvas draws the lab surface onto a vp.Cols × vp.Rows grid.
func renderCanvas(sc labScene, vp sim.Viewport, surface sim.Surface) string {
	if vp.Cols <= 0 || vp.Rows <= 0 {
		return ""
	}
	kinds := make([][]cellKind, vp.Rows)
	runes := make([][]rune, vp.Rows)
	cellW := surface.Width / float64(vp.Cols)
	cellH := surface.Height / float64(vp.Rows)
	tol := math.Max(cellW, cellH) / 2

	for row := 0; row < vp.Rows; row++ {
		kinds[row] = make([]cellKind, vp.Cols)
		runes[row] = make([]rune, vp.Cols)
		for col := 0; col < vp.Cols; col++ {
			p := vp.ToSurface(col, row, surface)
			kind, r := cellEmpty, ' '
			if sc.fieldLines && onFieldLine(p, sc.magnet.Pos, sc.strength, tol) {
				kind, r = cellField, '·'
			}
			if math.Abs(p.Dist(sc.coil.Center)-sc.coil.Radius) < tol {
				kind, r = cellCoil, 'o'
			}
			if pole, ok := magnetPole(sc.magnet, p); ok {
				kind, r = pole, '▓'
			}
			kinds[row][col] = kind
			runes[row][col] = r
		}
	}

	if sc.particles {
		for i := 0; i < electronCount; i++ {
			angle := sc.phase + 2*math.Pi*float64(i)/electronCount
			p := sc.coil.Center.Add(model.Vec{
				X: sc.coil.Radius * math.Cos(angle),
				Y: sc.coil.Radius * math.Sin(angle),
			})
			col, row := vp.ToCell(p, surface)
			if k := kinds[row][col]; k != cellNorth && k != cellSouth {
				kinds[row][col] = cellElectron
				runes[row][col] = '•'
			}
		}
	}
	labelPoles(sc.magnet, vp, surface, kinds, runes)

	coilStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(materialColor(sc.coil.Material)))
	lines := make([]string, vp.Rows)
	for row := range kinds {
		lines[row] = renderRow(kinds[row], runes[row], coilStyle)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of equal kind together.
func renderRow(kinds []cellKind, runes []rune, coilStyle lipgloss.Style) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(kinds); i++ {
		if i < len(kinds) && kinds[i] == kinds[start] {
			continue
		}
		run := string(runes[start:i])
		switch kinds[start] {
		case cellField:
			run = fieldStyle.Render(run)
		case cellCoil:
			run = coilStyle.Render(run)
		case cellElectron:
			run = electronStyle.Render(run)
		case cellNorth:
			run = northStyle.Render(run)
		case cellSouth:
			run = southStyle.Render(run)
		}
		b.WriteString(run)
		start = i
	}
	return b.String()
}

// onFieldLine reports whether p sits on one of the dotted rings drawn around the magnet.
func onFieldLine(p, magnet model.Vec, strength, tol float64) bool {
	d := p.Dist(magnet)
	spacing := 45 * math.Sqrt(math.Max(strength, 0.1))
	for i := 1; i <= fieldLineRuns; i++ {
		if math.Abs(d-spacing*float64(i)-20) < tol/2 {
			return true
		}
	}
	return false
}

// magnetPole returns which pole covers p, if any.
func magnetPole(m model.Magnet, p model.Vec) (cellKind, bool) {
	if !m.Contains(p) || m.Half.X <= 0 || m.Half.Y <= 0 {
		return cellEmpty, false
	}
	dx := (p.X - m.Pos.X) / m.Half.X
	dy := (p.Y - m.Pos.Y) / m.Half.Y
	switch m.Type {
	case model.MagnetHorseshoe:
		if math.Abs(dx) < 0.45 && dy > -0.2 {
			return cellEmpty, false
		}
		if dx < 0 {
			return cellNorth, true
		}
		return cellSouth, true
	case model.MagnetRing:
		q := dx*dx + dy*dy
		if q > 1 || q < 0.3 {
			return cellEmpty, false
		}
		if dy < 0 {
			return cellNorth, true
		}
		return cellSouth, true
	default:
		if dx < 0 {
			return cellNorth, true
		}
		return cellSouth, true
	}
}

func labelPoles(m model.Magnet, vp sim.Viewport, surface sim.Surface, kinds [][]cellKind, runes [][]rune) {
	var north, south model.Vec
	switch m.Type {
	case model.MagnetHorseshoe:
		north = m.Pos.Add(model.Vec{X: -m.Half.X * 0.75, Y: m.Half.Y * 0.5})
		south = m.Pos.Add(model.Vec{X: m.Half.X * 0.75, Y: m.Half.Y * 0.5})
	case model.MagnetRing:
		north = m.Pos.Add(model.Vec{Y: -m.Half.Y * 0.75})
		south = m.Pos.Add(model.Vec{Y: m.Half.Y * 0.75})
	default:
		north = m.Pos.Add(model.Vec{X: -m.Half.X / 2})
		south = m.Pos.Add(model.Vec{X: m.Half.X / 2})
	}
	for _, pole := range []struct {
		at   model.Vec
		kind cellKind
		r    rune
	}{{north, cellNorth, 'N'}, {south, cellSouth, 'S'}} {
		col, row := vp.ToCell(pole.at, surface)
		if kinds[row][col] == pole.kind {
			runes[row][col] = pole.r
		}
	}
}

func materialColor(name string) string {
	if m, ok := model.LookupMaterial(name); ok {
		return m.Color
	}
	return "#B87333"
}
