// Package signal holds the bounded buffers fed by the simulation step.
package signal

// WaveformSize is the number of samples shown on the oscilloscope.
const WaveformSize = 100

// Waveform is a fixed-length ring of the most recent current samples.
type Waveform struct {
	samples [WaveformSize]float64
	head    int // index of the oldest sample
}

// Push appends v and evicts the oldest sample.
func (w *Waveform) Push(v float64) {
	w.samples[w.head] = v
	w.head = (w.head + 1) % WaveformSize
}

// Latest returns the newest sample.
func (w *Waveform) Latest() float64 {
	return w.samples[(w.head+WaveformSize-1)%WaveformSize]
}

// Snapshot returns the samples ordered oldest to newest.
func (w *Waveform) Snapshot() []float64 {
	out := make([]float64, WaveformSize)
	n := copy(out, w.samples[w.head:])
	copy(out[n:], w.samples[:w.head])
	return out
}

// Reset zeroes every sample.
func (w *Waveform) Reset() {
	*w = Waveform{}
}
