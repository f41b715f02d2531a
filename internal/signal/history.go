package signal

import (
	"time"

	"github.com/verte-zerg/faraday/internal/model"
)

const (
	// HistoryCapacity bounds the data log.
	HistoryCapacity = 200
	// SampleInterval is the wall-clock spacing of history points.
	SampleInterval = 500 * time.Millisecond
)

// History is a capped time series sub-sampled from the per-frame signal.
type History struct {
	points []model.HistoryPoint
	since  time.Duration
}

// Observe accumulates elapsed time and reports whether a point is due.
func (h *History) Observe(dt time.Duration) bool {
	h.since += dt
	if h.since < SampleInterval {
		return false
	}
	h.since -= SampleInterval
	if h.since >= SampleInterval {
		// a long frame owes several samples; one is enough
		h.since = 0
	}
	return true
}

// Append adds p, dropping the oldest prefix when over capacity.
func (h *History) Append(p model.HistoryPoint) {
	h.points = append(h.points, p)
	if over := len(h.points) - HistoryCapacity; over > 0 {
		n := copy(h.points, h.points[over:])
		h.points = h.points[:n]
	}
}

// Len returns the number of stored points.
func (h *History) Len() int {
	return len(h.points)
}

// Points returns a copy of the stored points, oldest first.
func (h *History) Points() []model.HistoryPoint {
	out := make([]model.HistoryPoint, len(h.points))
	copy(out, h.points)
	return out
}

// Reset clears the log and the sampling clock.
func (h *History) Reset() {
	h.points = nil
	h.since = 0
}
