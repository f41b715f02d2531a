// Package model defines shared data structures.
package model

import (
	"math"
	"sort"
	"strings"
)

// Vec is a point or extent on the simulation surface, in pixels.
type Vec struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Dist returns the euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Dist2 returns the squared distance between v and o.
func (v Vec) Dist2(o Vec) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// PixelsPerCm converts surface pixels to displayed centimetres.
const PixelsPerCm = 10.0

// MagnetType is the polarity layout of the magnet.
type MagnetType string

const (
	MagnetBar       MagnetType = "bar"
	MagnetHorseshoe MagnetType = "horseshoe"
	MagnetRing      MagnetType = "ring"
)

// MagnetTypes lists magnet layouts in cycling order.
var MagnetTypes = []MagnetType{MagnetBar, MagnetHorseshoe, MagnetRing}

// ParseMagnetType resolves a magnet layout by name.
func ParseMagnetType(name string) (MagnetType, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, t := range MagnetTypes {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// Next returns the layout after t in cycling order.
func (t MagnetType) Next() MagnetType {
	for i, mt := range MagnetTypes {
		if mt == t {
			return MagnetTypes[(i+1)%len(MagnetTypes)]
		}
	}
	return MagnetBar
}

// HalfExtent returns the half width/height of the magnet's bounding box.
func (t MagnetType) HalfExtent() Vec {
	switch t {
	case MagnetHorseshoe:
		return Vec{X: 30, Y: 25}
	case MagnetRing:
		return Vec{X: 22, Y: 22}
	default:
		return Vec{X: 40, Y: 15}
	}
}

// Magnet is the draggable field source. Pos is the center of its bounding box.
type Magnet struct {
	Pos      Vec
	Half     Vec
	Type     MagnetType
	Dragging bool
}

// Contains reports whether p lies inside the magnet's bounding box.
func (m Magnet) Contains(p Vec) bool {
	return math.Abs(p.X-m.Pos.X) <= m.Half.X && math.Abs(p.Y-m.Pos.Y) <= m.Half.Y
}

// Coil is the fixed pickup coil.
type Coil struct {
	Center   Vec
	Radius   float64
	Turns    int
	Material string
}

// Material describes a coil conductor.
type Material struct {
	Name         string
	Conductivity float64
	Color        string
}

// ReferenceMaterial is the material with conductivity 1.0.
const ReferenceMaterial = "copper"

var materials = map[string]Material{
	"copper":   {Name: "copper", Conductivity: 1.0, Color: "#B87333"},
	"silver":   {Name: "silver", Conductivity: 1.05, Color: "#C0C0C0"},
	"aluminum": {Name: "aluminum", Conductivity: 0.61, Color: "#A8A9AD"},
	"iron":     {Name: "iron", Conductivity: 0.17, Color: "#6B6E70"},
}

// LookupMaterial returns the named material.
func LookupMaterial(name string) (Material, bool) {
	m, ok := materials[strings.TrimSpace(strings.ToLower(name))]
	return m, ok
}

// MaterialNames returns material names sorted alphabetically.
func MaterialNames() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextMaterial returns the material after name in alphabetical order.
func NextMaterial(name string) string {
	names := MaterialNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return ReferenceMaterial
}

// HistoryPoint is one sub-sampled row of the data log.
type HistoryPoint struct {
	Time     float64 // seconds since run start
	Current  float64 // amperes
	FluxRate float64 // webers per second
	Distance float64 // centimetres
}

// AchievementID identifies an achievement.
type AchievementID string

// Achievement is a one-shot milestone.
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
	Icon        string
	Unlocked    bool
}

// Sound is a discrete audio cue emitted by a simulation step.
type Sound int

const (
	SoundCoilEnter Sound = iota
	SoundCoilExit
	SoundBulbOn
	SoundMaxPower
	SoundAchievement
	SoundGameStart
	SoundGameOver
	SoundHighScore
)

func (s Sound) String() string {
	switch s {
	case SoundCoilEnter:
		return "coil-enter"
	case SoundCoilExit:
		return "coil-exit"
	case SoundBulbOn:
		return "bulb-on"
	case SoundMaxPower:
		return "max-power"
	case SoundAchievement:
		return "achievement"
	case SoundGameStart:
		return "game-start"
	case SoundGameOver:
		return "game-over"
	case SoundHighScore:
		return "high-score"
	default:
		return "unknown"
	}
}

// LabConfig holds the user-tunable parameters of a run.
type LabConfig struct {
	Turns             int
	Strength          float64
	MagnetType        MagnetType
	Material          string
	SoundEnabled      bool
	ParticlesEnabled  bool
	FieldLinesEnabled bool
	SlowMotion        bool
}

// DefaultLabConfig returns the settings a fresh lab starts with.
func DefaultLabConfig() LabConfig {
	return LabConfig{
		Turns:             5,
		Strength:          1.0,
		MagnetType:        MagnetBar,
		Material:          ReferenceMaterial,
		SoundEnabled:      true,
		ParticlesEnabled:  true,
		FieldLinesEnabled: true,
	}
}

// Telemetry is the read-only view of the engine handed to the presentation layer.
type Telemetry struct {
	BulbOn           bool
	Distance         string
	Current          string
	FluxRate         string
	Brightness       float64
	MagnetInsideCoil bool
	Oscilloscope     []float64
	ScopeLatest      float64
	History          []HistoryPoint
	Achievements     []Achievement
	UnlockedCount    int

	GameActive    bool
	GameScore     int
	GameTime      int
	GameHighScore int

	Preset string
	Magnet Magnet
	Coil   Coil
	Config LabConfig
}
