package engine

import (
	"maps"
	"slices"
	"time"

	"github.com/cory-johannsen/valouniversaire/internal/game/tree"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// Resources are the spendable and permanent currencies of a player.
//
// Invariant: every field is >= 0.
type Resources struct {
	Wood           int `json:"wood"`
	Beer           int `json:"beer"`
	PrestigePoints int `json:"prestigePoints"`
}

// Stats are the cumulative counters of a run. They survive prestige and are
// cleared by a restart.
type Stats struct {
	TotalClicks          int                    `json:"totalClicks"`
	TotalTreesChopped    int                    `json:"totalTreesChopped"`
	TotalWoodGained      int                    `json:"totalWoodGained"`
	TotalBeersConsumed   int                    `json:"totalBeersConsumed"`
	WorkersHired         int                    `json:"workersHired"`
	CriticalHits         int                    `json:"criticalHits"`
	PrestigeCount        int                    `json:"prestigeCount"`
	AchievementsUnlocked []tuning.AchievementID `json:"achievementsUnlocked"`
	// RecentClickTimestamps holds the manual chops of the trailing speed window, oldest first.
	RecentClickTimestamps []time.Time `json:"-"`
}

func (s Stats) clone() Stats {
	s.AchievementsUnlocked = slices.Clone(s.AchievementsUnlocked)
	s.RecentClickTimestamps = slices.Clone(s.RecentClickTimestamps)
	if s.AchievementsUnlocked == nil {
		s.AchievementsUnlocked = []tuning.AchievementID{}
	}
	return s
}

// PlayerState is the complete mutable state of one player's run.
type PlayerState struct {
	PlayerName string
	Resources  Resources
	AxeLevel   int
	Workers    map[tuning.WorkerID]int
	Upgrades   map[tuning.UpgradeID]int
	Tree       tree.Tree
	Stats      Stats
	// StartedAt is set by the first applied player action and reset by prestige.
	StartedAt *time.Time
	// WonAt is set the first time the beer target is reached and kept until
	// prestige or restart.
	WonAt *time.Time
}

func newPlayerState(name string, c *tuning.Catalog, t tree.Tree) PlayerState {
	s := PlayerState{
		PlayerName: name,
		AxeLevel:   1,
		Workers:    make(map[tuning.WorkerID]int),
		Upgrades:   make(map[tuning.UpgradeID]int),
		Tree:       t,
	}
	for _, w := range c.Workers() {
		s.Workers[w] = 0
	}
	for _, u := range c.Upgrades() {
		s.Upgrades[u] = 0
	}
	return s
}

// Clone returns a deep copy of s.
func (s PlayerState) Clone() PlayerState {
	out := s
	out.Workers = maps.Clone(s.Workers)
	out.Upgrades = maps.Clone(s.Upgrades)
	out.Stats = s.Stats.clone()
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.WonAt != nil {
		t := *s.WonAt
		out.WonAt = &t
	}
	return out
}

// Snapshot is the read-only view of a player handed to presentation and
// persistence collaborators after every operation.
type Snapshot struct {
	PlayerName     string                       `json:"playerName"`
	Resources      Resources                    `json:"resources"`
	AxeLevel       int                          `json:"axeLevel"`
	Tree           tree.Tree                    `json:"tree"`
	Workers        map[tuning.WorkerID]int      `json:"workers"`
	Upgrades       map[tuning.UpgradeID]int     `json:"upgrades"`
	Stats          Stats                        `json:"stats"`
	PrestigePoints int                          `json:"prestigePoints"`
	CanPrestige    bool                         `json:"canPrestige"`
	IsWon          bool                         `json:"isWon"`
	Prices         map[tuning.PurchasableID]int `json:"prices"`
	StartedAt      *time.Time                   `json:"startedAt,omitempty"`
	WonAt          *time.Time                   `json:"wonAt,omitempty"`
	DurationMs     int64                        `json:"durationMs"`
	GameDuration   string                       `json:"gameDuration"`
}
