// Package achievement tracks one-shot milestones.
package achievement

import "github.com/verte-zerg/faraday/internal/model"

const (
	FirstLight     model.AchievementID = "first_light"
	MaxPower       model.AchievementID = "max_power"
	ThroughTheLoop model.AchievementID = "through_the_loop"
	GameMaster     model.AchievementID = "game_master"
	Experimenter   model.AchievementID = "experimenter"
	Theorist       model.AchievementID = "theorist"
	Historian      model.AchievementID = "historian"
	DataScientist  model.AchievementID = "data_scientist"
)

// Catalogue lists every achievement in display order, all locked.
func Catalogue() []model.Achievement {
	return []model.Achievement{
		{ID: FirstLight, Name: "First Light", Description: "Light the bulb for the first time", Icon: "💡"},
		{ID: ThroughTheLoop, Name: "Through the Loop", Description: "Move the magnet into the coil", Icon: "🧲"},
		{ID: MaxPower, Name: "Max Power", Description: "Drive the bulb above 95% brightness", Icon: "⚡"},
		{ID: GameMaster, Name: "Game Master", Description: "Score more than 300 points in game mode", Icon: "🏆"},
		{ID: Experimenter, Name: "Experimenter", Description: "Try a different magnet type", Icon: "🔬"},
		{ID: Theorist, Name: "Theorist", Description: "Read the theory of induction", Icon: "📘"},
		{ID: Historian, Name: "Historian", Description: "Read about Faraday's discovery", Icon: "📜"},
		{ID: DataScientist, Name: "Data Scientist", Description: "Export recorded data to CSV", Icon: "📊"},
	}
}

// Tracker holds unlock state. Unlocks are monotonic.
type Tracker struct {
	items []model.Achievement
	index map[model.AchievementID]int
}

// NewTracker returns a tracker with every achievement locked.
func NewTracker() *Tracker {
	items := Catalogue()
	index := make(map[model.AchievementID]int, len(items))
	for i, a := range items {
		index[a.ID] = i
	}
	return &Tracker{items: items, index: index}
}

// Unlock marks id unlocked and reports whether it was locked before.
// Unknown ids and repeated unlocks are no-ops.
func (t *Tracker) Unlock(id model.AchievementID) bool {
	i, ok := t.index[id]
	if !ok || t.items[i].Unlocked {
		return false
	}
	t.items[i].Unlocked = true
	return true
}

// Count returns how many achievements are unlocked.
func (t *Tracker) Count() int {
	n := 0
	for _, a := range t.items {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of all achievements.
func (t *Tracker) Snapshot() []model.Achievement {
	out := make([]model.Achievement, len(t.items))
	copy(out, t.items)
	return out
}
