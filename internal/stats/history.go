// Package stats summarises and renders the lab's history log.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/physics"
	"github.com/verte-zerg/faraday/internal/signal"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a history log.
type Summary struct {
	Samples         int
	Span            time.Duration
	PeakCurrent     float64
	MeanCurrent     float64
	PeakFluxRate    float64
	MeanFluxRate    float64
	ClosestDistance float64 // cm
	LitTime         time.Duration
}

// Summarize aggregates points. Each point stands for one sample interval.
func Summarize(points []model.HistoryPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	s := Summary{
		Samples:         len(points),
		Span:            time.Duration((points[len(points)-1].Time - points[0].Time) * float64(time.Second)),
		ClosestDistance: math.Inf(1),
	}
	var currentSum, fluxSum float64
	lit := 0
	for _, p := range points {
		currentSum += p.Current
		fluxSum += p.FluxRate
		s.PeakCurrent = math.Max(s.PeakCurrent, p.Current)
		s.PeakFluxRate = math.Max(s.PeakFluxRate, p.FluxRate)
		s.ClosestDistance = math.Min(s.ClosestDistance, p.Distance)
		if p.Current >= physics.BulbOnCurrent {
			lit++
		}
	}
	n := float64(len(points))
	s.MeanCurrent = currentSum / n
	s.MeanFluxRate = fluxSum / n
	s.LitTime = time.Duration(lit) * signal.SampleInterval
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

// RenderSummary prints a summary table for points.
func RenderSummary(w io.Writer, points []model.HistoryPoint) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "No data recorded.")
		return err
	}
	s := Summarize(points)
	rows := [][]string{
		{"Samples", fmt.Sprintf("%d", s.Samples)},
		{"Span", fmt.Sprintf("%.1f s", s.Span.Seconds())},
		{"Peak current", fmt.Sprintf("%.3f A", s.PeakCurrent)},
		{"Mean current", fmt.Sprintf("%.3f A", s.MeanCurrent)},
		{"Peak flux rate", fmt.Sprintf("%.3f Wb/s", s.PeakFluxRate)},
		{"Mean flux rate", fmt.Sprintf("%.3f Wb/s", s.MeanFluxRate)},
		{"Closest approach", fmt.Sprintf("%.2f cm", s.ClosestDistance)},
		{"Bulb lit", fmt.Sprintf("%.1f s", s.LitTime.Seconds())},
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// HistoryRows formats points as table rows, newest last, keeping at most limit rows.
func HistoryRows(points []model.HistoryPoint, limit int) [][]string {
	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%.2f", p.Time),
			fmt.Sprintf("%.3f", p.Current),
			fmt.Sprintf("%.3f", p.FluxRate),
			fmt.Sprintf("%.2f", p.Distance),
		})
	}
	return rows
}

// HistoryHeaders are the column titles matching HistoryRows.
var HistoryHeaders = []string{"Time (s)", "Current (A)", "Flux Rate (Wb/s)", "Distance (cm)"}

// RenderHistoryTable prints the last limit points as an aligned table.
func RenderHistoryTable(w io.Writer, points []model.HistoryPoint, limit int) error {
	if len(points) == 0 {
		return nil
	}
	lines := formatTable(HistoryHeaders, HistoryRows(points, limit), map[int]bool{0: true, 1: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves plots current, flux rate and distance over the history.
func RenderCurves(w io.Writer, points []model.HistoryPoint, totalWidth, height int, useColor bool) error {
	if len(points) == 0 {
		return nil
	}
	current := make([]float64, len(points))
	flux := make([]float64, len(points))
	distance := make([]float64, len(points))
	for i, p := range points {
		current[i] = p.Current
		flux[i] = p.FluxRate
		distance[i] = p.Distance
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "History", []Series{
		{Name: "Current", Unit: "A", Values: current},
		{Name: "Flux rate", Unit: "Wb/s", Values: MovingAverage(flux, 2)},
		{Name: "Distance", Unit: "cm", Values: distance},
	}, width, height, useColor)
}
