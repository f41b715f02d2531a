package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/physics"
)

const (
	sidePanelWidth  = 32
	gaugeWidth      = 24
	gaugeFullScale  = 5.0 // amperes
	scopeHeight     = 5
	bulbOffColor    = "#3A3A3A"
	bulbGlowColor   = "#FFD75F"
	bulbHotColor    = "#FFFFFF"
	unlockedColor   = "#C89A3A"
	lockedTextColor = "#6E6E6E"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	panelStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	scopeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD4FF"))
	needleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	gameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(lockedTextColor))
	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(unlockedColor)).Bold(true)
)

func readout(label, value string) string {
	return labelStyle.Render(runewidth.FillRight(label, 11)) + valueStyle.Render(value)
}

func renderReadouts(tel model.Telemetry) string {
	inside := "no"
	if tel.MagnetInsideCoil {
		inside = "yes"
	}
	distance := tel.Distance
	if distance != "--" {
		distance += " cm"
	}
	cfg := tel.Config
	lines := []string{
		readout("Distance", distance),
		readout("Current", tel.Current+" A"),
		readout("Flux rate", tel.FluxRate+" Wb/s"),
		readout("In coil", inside),
		readout("Coil", fmt.Sprintf("%d turns, %s", cfg.Turns, cfg.Material)),
		readout("Magnet", fmt.Sprintf("%s ×%.1f", cfg.MagnetType, cfg.Strength)),
		readout("Options", optionFlags(cfg)),
	}
	if tel.Preset != "" {
		lines = append(lines, readout("Demo", tel.Preset))
	}
	return strings.Join(lines, "\n")
}

func optionFlags(cfg model.LabConfig) string {
	flag := func(on bool, name string) string {
		if on {
			return name
		}
		return strings.Repeat("-", runewidth.StringWidth(name))
	}
	return strings.Join([]string{
		flag(cfg.SoundEnabled, "snd"),
		flag(cfg.ParticlesEnabled, "e⁻"),
		flag(cfg.FieldLinesEnabled, "fld"),
		flag(cfg.SlowMotion, "slow"),
	}, " ")
}

// glowColor blends the filament color for a brightness in [0,1].
func glowColor(brightness float64) string {
	off, _ := colorful.Hex(bulbOffColor)
	glow, _ := colorful.Hex(bulbGlowColor)
	hot, _ := colorful.Hex(bulbHotColor)
	b := math.Max(0, math.Min(1, brightness))
	if b <= 0 {
		return off.Hex()
	}
	if b < 0.8 {
		return off.BlendLab(glow, b/0.8).Clamped().Hex()
	}
	return glow.BlendLab(hot, (b-0.8)/0.2*0.6).Clamped().Hex()
}

func renderBulb(brightness float64, on bool) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(glowColor(brightness)))
	filament := " "
	if on {
		filament = "*"
	}
	if brightness > physics.MaxPowerBrightness {
		filament = "✶"
	}
	lines := []string{
		"  .---.  ",
		fmt.Sprintf(" (  %s  ) ", filament),
		"  `-+-'  ",
		"   |=|   ",
	}
	label := fmt.Sprintf("%3.0f%%", brightness*100)
	return lipgloss.JoinHorizontal(lipgloss.Center, style.Render(strings.Join(lines, "\n")), "  ", valueStyle.Render(label))
}

// renderGauge draws the galvanometer scale with the needle at pos in [0,1].
func renderGauge(pos float64) string {
	pos = math.Max(0, math.Min(1, pos))
	idx := int(math.Round(pos * float64(gaugeWidth-1)))
	var b strings.Builder
	b.WriteString(strings.Repeat("─", idx))
	b.WriteString(needleStyle.Render("┃"))
	b.WriteString(strings.Repeat("─", gaugeWidth-1-idx))
	scale := runewidth.FillRight("0", gaugeWidth-2) + fmt.Sprintf("%.0fA", gaugeFullScale)
	return b.String() + "\n" + labelStyle.Render(scale)
}

func renderGame(tel model.Telemetry) string {
	if !tel.GameActive {
		return labelStyle.Render(fmt.Sprintf("Game: press g  best %d", tel.GameHighScore))
	}
	return gameStyle.Render(fmt.Sprintf("⏱ %2ds  score %d  best %d", tel.GameTime, tel.GameScore, tel.GameHighScore))
}

func renderSidePanel(tel model.Telemetry, needle float64) string {
	sections := []string{
		renderReadouts(tel),
		renderBulb(tel.Brightness, tel.BulbOn),
		renderGauge(needle),
		renderGame(tel),
	}
	return panelStyle.Width(sidePanelWidth).Render(strings.Join(sections, "\n\n"))
}

// renderScope plots the waveform buffer.
func renderScope(samples []float64, width int) string {
	if len(samples) == 0 || width < 10 {
		return ""
	}
	upper := 0.5
	for _, v := range samples {
		upper = math.Max(upper, v)
	}
	graph := asciigraph.Plot(samples,
		asciigraph.Height(scopeHeight),
		asciigraph.Width(width-8),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(upper),
		asciigraph.Precision(2),
		asciigraph.Caption("Oscilloscope · current (A)"),
	)
	return scopeStyle.Render(graph)
}

func renderAchievements(list []model.Achievement, unlocked int) string {
	lines := make([]string, 0, len(list)+2)
	for _, a := range list {
		if a.Unlocked {
			lines = append(lines, unlockedStyle.Render(fmt.Sprintf("%s  %s", a.Icon, a.Name))+"  "+labelStyle.Render(a.Description))
			continue
		}
		lines = append(lines, lockedStyle.Render(fmt.Sprintf("%s  %s  %s", "🔒", a.Name, a.Description)))
	}
	header := valueStyle.Render(fmt.Sprintf("Achievements %d/%d", unlocked, len(list)))
	return header + "\n\n" + strings.Join(lines, "\n")
}
