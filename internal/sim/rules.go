package sim

import (
	"github.com/verte-zerg/faraday/internal/achievement"
	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/physics"
)

// GameMasterScore is the score a game must exceed to unlock Game Master.
const GameMasterScore = 300

// Observation is the slice of derived state the rules look at.
type Observation struct {
	Valid      bool
	InsideCoil bool
	BulbOn     bool
	Brightness float64
	Score      int
}

func observe(sig physics.Signal, score int) Observation {
	return Observation{
		Valid:      true,
		InsideCoil: sig.InsideCoil,
		BulbOn:     sig.BulbOn(),
		Brightness: sig.Brightness,
		Score:      score,
	}
}

// Rule fires its sounds and unlock when Fires holds for a frame transition.
type Rule struct {
	Name   string
	Fires  func(prev, cur Observation) bool
	Sounds []model.Sound
	Unlock model.AchievementID
}

// Outcome collects what the rules fired on one frame.
type Outcome struct {
	Sounds  []model.Sound
	Unlocks []model.AchievementID
}

// DefaultRules is the lab's rule table.
var DefaultRules = []Rule{
	{
		Name:   "entered-coil",
		Fires:  func(prev, cur Observation) bool { return prev.Valid && !prev.InsideCoil && cur.InsideCoil },
		Sounds: []model.Sound{model.SoundCoilEnter},
		Unlock: achievement.ThroughTheLoop,
	},
	{
		Name:   "left-coil",
		Fires:  func(prev, cur Observation) bool { return prev.Valid && prev.InsideCoil && !cur.InsideCoil },
		Sounds: []model.Sound{model.SoundCoilExit},
	},
	{
		Name:   "bulb-on",
		Fires:  func(prev, cur Observation) bool { return !prev.BulbOn && cur.BulbOn },
		Sounds: []model.Sound{model.SoundBulbOn},
		Unlock: achievement.FirstLight,
	},
	{
		Name: "max-power",
		Fires: func(prev, cur Observation) bool {
			return prev.Brightness <= physics.MaxPowerBrightness && cur.Brightness > physics.MaxPowerBrightness
		},
		Sounds: []model.Sound{model.SoundMaxPower},
		Unlock: achievement.MaxPower,
	},
	{
		Name:   "game-master",
		Fires:  func(_, cur Observation) bool { return cur.Score > GameMasterScore },
		Unlock: achievement.GameMaster,
	},
}

// Evaluate runs every rule against one frame transition.
func Evaluate(rules []Rule, prev, cur Observation) Outcome {
	var out Outcome
	for _, r := range rules {
		if !r.Fires(prev, cur) {
			continue
		}
		out.Sounds = append(out.Sounds, r.Sounds...)
		if r.Unlock != "" {
			out.Unlocks = append(out.Unlocks, r.Unlock)
		}
	}
	return out
}

// Notice is a discrete notification from the view layer.
type Notice int

const (
	NoticeMagnetChanged Notice = iota
	NoticeTheoryOpened
	NoticeHistoryOpened
	NoticeDataExported
)

var noticeUnlocks = map[Notice]model.AchievementID{
	NoticeMagnetChanged: achievement.Experimenter,
	NoticeTheoryOpened:  achievement.Theorist,
	NoticeHistoryOpened: achievement.Historian,
	NoticeDataExported:  achievement.DataScientist,
}
