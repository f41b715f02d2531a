package sim

import "github.com/verte-zerg/faraday/internal/model"

// PointerDown starts a drag when p hits the magnet. Presets own the magnet while active.
func PointerDown(s *State, p model.Vec) bool {
	if s.Preset != nil {
		return false
	}
	if !s.Magnet.Contains(p) {
		return false
	}
	s.Magnet.Dragging = true
	s.grab = s.Magnet.Pos.Sub(p)
	return true
}

// PointerMove drags the magnet, keeping it fully on the surface.
func PointerMove(s *State, p model.Vec) {
	if !s.Magnet.Dragging || s.Preset != nil {
		return
	}
	s.Magnet.Pos = s.Surface.Clamp(p.Add(s.grab), s.Magnet.Half)
}

// PointerUp ends a drag. Pointer-leave is handled the same way.
func PointerUp(s *State) {
	s.Magnet.Dragging = false
	s.grab = model.Vec{}
}
