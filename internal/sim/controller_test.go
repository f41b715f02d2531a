package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/faraday/internal/model"
)

func TestPointerDownHitTest(t *testing.T) {
	s := NewState(model.DefaultLabConfig())
	miss := s.Magnet.Pos.Add(model.Vec{X: s.Magnet.Half.X + 1})
	assert.False(t, PointerDown(&s, miss))
	assert.False(t, s.Magnet.Dragging)

	hit := s.Magnet.Pos.Add(model.Vec{X: s.Magnet.Half.X - 1})
	assert.True(t, PointerDown(&s, hit))
	assert.True(t, s.Magnet.Dragging)
}

func TestPointerMoveKeepsGrabOffsetAndClamps(t *testing.T) {
	s := NewState(model.DefaultLabConfig())
	start := s.Magnet.Pos
	grab := start.Add(model.Vec{X: 10, Y: 5})
	require.True(t, PointerDown(&s, grab))

	PointerMove(&s, grab.Add(model.Vec{X: 100}))
	assert.Equal(t, start.Add(model.Vec{X: 100}), s.Magnet.Pos)

	PointerMove(&s, model.Vec{X: -500, Y: 9000})
	assert.Equal(t, model.Vec{X: s.Magnet.Half.X, Y: s.Surface.Height - s.Magnet.Half.Y}, s.Magnet.Pos)

	PointerUp(&s)
	assert.False(t, s.Magnet.Dragging)
	before := s.Magnet.Pos
	PointerMove(&s, model.Vec{X: 300, Y: 300})
	assert.Equal(t, before, s.Magnet.Pos)
}

func TestPresetOwnsMagnet(t *testing.T) {
	s := NewState(model.DefaultLabConfig())
	script, ok := LookupScript("through")
	require.True(t, ok)
	StartPreset(&s, script)
	assert.False(t, PointerDown(&s, s.Magnet.Pos))
	assert.Equal(t, "through", s.PresetName())
}

func TestPresetEndsDrag(t *testing.T) {
	s := NewState(model.DefaultLabConfig())
	require.True(t, PointerDown(&s, s.Magnet.Pos))
	script, _ := LookupScript("fast")
	StartPreset(&s, script)
	assert.False(t, s.Magnet.Dragging)
}

func TestPresetSelfClears(t *testing.T) {
	for _, name := range ScriptNames() {
		script, ok := LookupScript(name)
		require.True(t, ok)
		s := NewState(model.DefaultLabConfig())
		StartPreset(&s, script)
		frames := int(script.Duration/frame) + 2
		moved := false
		last := s.Magnet.Pos
		for i := 0; i < frames; i++ {
			Step(&s, Input{Strength: 1, Conductivity: 1, Turns: 5}, DefaultRules, frame)
			if s.Magnet.Pos != last {
				moved = true
			}
			last = s.Magnet.Pos
		}
		assert.True(t, moved, "preset %s never moved the magnet", name)
		assert.Nil(t, s.Preset, "preset %s did not release the magnet", name)
		assert.True(t, PointerDown(&s, s.Magnet.Pos), "pointer control not restored after %s", name)
	}
}

func TestPresetDurations(t *testing.T) {
	for _, name := range ScriptNames() {
		script, _ := LookupScript(name)
		assert.GreaterOrEqual(t, script.Duration, 3*time.Second)
		assert.LessOrEqual(t, script.Duration, 5*time.Second)
	}
	_, ok := LookupScript("nope")
	assert.False(t, ok)
}

func TestThroughPresetCrossesCoil(t *testing.T) {
	s := NewState(model.DefaultLabConfig())
	script, _ := LookupScript("through")
	StartPreset(&s, script)
	var out []model.Sound
	for s.Preset != nil {
		o := Step(&s, Input{Strength: 1, Conductivity: 1, Turns: 5}, DefaultRules, frame)
		out = append(out, o.Sounds...)
	}
	assert.Contains(t, out, model.SoundCoilEnter)
	assert.Contains(t, out, model.SoundCoilExit)
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Cols: 80, Rows: 20}
	p := v.ToSurface(40, 10, DefaultSurface)
	assert.InDelta(t, 405, p.X, 1e-9)
	assert.InDelta(t, 210, p.Y, 1e-9)
	col, row := v.ToCell(p, DefaultSurface)
	assert.Equal(t, 40, col)
	assert.Equal(t, 10, row)

	col, row = v.ToCell(model.Vec{X: 5000, Y: -3}, DefaultSurface)
	assert.Equal(t, 79, col)
	assert.Equal(t, 0, row)
}
