package jsonfile

import (
	"time"

	"github.com/cory-johannsen/valouniversaire/internal/results"
)

// Document is the on-disk result file. Client-submitted files use the same
// layout without runId.
type Document struct {
	RunID      string     `json:"runId,omitempty"`
	PlayerInfo PlayerInfo `json:"playerInfo"`
	GameStats  GameStats  `json:"gameStats"`
}

type PlayerInfo struct {
	OriginalName  string `json:"originalName"`
	UniqueName    string `json:"uniqueName"`
	GameDate      string `json:"gameDate"`
	GameStartTime string `json:"gameStartTime"`
}

type GameStats struct {
	TotalGameTime TotalGameTime `json:"totalGameTime"`
	Resources     ResourceStats `json:"resources"`
	Actions       ActionStats   `json:"actions"`
	Upgrades      UpgradeStats  `json:"upgrades"`
	Efficiency    Efficiency    `json:"efficiency"`
	Completion    Completion    `json:"completion"`
}

type TotalGameTime struct {
	Milliseconds int64  `json:"milliseconds"`
	Minutes      int64  `json:"minutes"`
	Seconds      int64  `json:"seconds"`
	Formatted    string `json:"formatted"`
}

type ResourceStats struct {
	FinalWood          int `json:"finalWood"`
	FinalBeers         int `json:"finalBeers"`
	TotalWoodGained    int `json:"totalWoodGained"`
	TotalBeersConsumed int `json:"totalBeersConsumed"`
	WoodPerMinute      int `json:"woodPerMinute"`
}

type ActionStats struct {
	TotalClicks       int `json:"totalClicks"`
	TotalTreesChopped int `json:"totalTreesChopped"`
	WorkersHired      int `json:"workersHired"`
}

type UpgradeStats struct {
	FinalAxeLevel int            `json:"finalAxeLevel"`
	Workers       map[string]int `json:"workers"`
}

type Efficiency struct {
	WoodPerMinute   int `json:"woodPerMinute"`
	ClicksPerMinute int `json:"clicksPerMinute"`
	TreesPerMinute  int `json:"treesPerMinute"`
}

type Completion struct {
	TargetReached bool   `json:"targetReached"`
	FinalStatus   string `json:"finalStatus"`
}

func perMinute(n int, ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(int64(n) * 60_000 / ms)
}

// NewDocument renders run in the result file layout.
func NewDocument(run results.RunSummary) Document {
	workers := make(map[string]int, len(run.Workers)+1)
	total := 0
	for id, n := range run.Workers {
		workers[string(id)] = n
		total += n
	}
	workers["totalWorkers"] = total

	wpm := run.WoodPerMinute()
	return Document{
		RunID: run.ID.String(),
		PlayerInfo: PlayerInfo{
			OriginalName:  run.PlayerName,
			UniqueName:    run.PlayerName + "_" + run.ID.String(),
			GameDate:      run.CompletedAt.UTC().Format(time.RFC3339Nano),
			GameStartTime: run.StartedAt.UTC().Format(time.RFC3339Nano),
		},
		GameStats: GameStats{
			TotalGameTime: TotalGameTime{
				Milliseconds: run.DurationMs,
				Minutes:      run.DurationMs / 60_000,
				Seconds:      (run.DurationMs % 60_000) / 1000,
				Formatted:    results.FormatClock(run.DurationMs),
			},
			Resources: ResourceStats{
				FinalWood:          run.Resources.Wood,
				FinalBeers:         run.Resources.Beer,
				TotalWoodGained:    run.Stats.TotalWoodGained,
				TotalBeersConsumed: run.Stats.TotalBeersConsumed,
				WoodPerMinute:      wpm,
			},
			Actions: ActionStats{
				TotalClicks:       run.Stats.TotalClicks,
				TotalTreesChopped: run.Stats.TotalTreesChopped,
				WorkersHired:      run.Stats.WorkersHired,
			},
			Upgrades: UpgradeStats{
				FinalAxeLevel: run.AxeLevel,
				Workers:       workers,
			},
			Efficiency: Efficiency{
				WoodPerMinute:   wpm,
				ClicksPerMinute: perMinute(run.Stats.TotalClicks, run.DurationMs),
				TreesPerMinute:  perMinute(run.Stats.TotalTreesChopped, run.DurationMs),
			},
			Completion: Completion{
				TargetReached: true,
				FinalStatus:   results.StatusLegend,
			},
		},
	}
}

// scoreFile is the lenient read side of Document. Submitted files may carry
// fractional numbers and omit any field.
type scoreFile struct {
	RunID      string `json:"runId"`
	PlayerInfo struct {
		OriginalName string `json:"originalName"`
		GameDate     string `json:"gameDate"`
	} `json:"playerInfo"`
	GameStats *struct {
		TotalGameTime struct {
			Milliseconds float64 `json:"milliseconds"`
			Formatted    string  `json:"formatted"`
		} `json:"totalGameTime"`
		Resources struct {
			TotalWoodGained float64 `json:"totalWoodGained"`
		} `json:"resources"`
		Actions struct {
			TotalClicks  float64 `json:"totalClicks"`
			WorkersHired float64 `json:"workersHired"`
		} `json:"actions"`
		Upgrades struct {
			FinalAxeLevel float64 `json:"finalAxeLevel"`
		} `json:"upgrades"`
		Efficiency struct {
			WoodPerMinute float64 `json:"woodPerMinute"`
		} `json:"efficiency"`
		Completion struct {
			TargetReached bool   `json:"targetReached"`
			FinalStatus   string `json:"finalStatus"`
		} `json:"completion"`
	} `json:"gameStats"`
}

// score converts f to a leaderboard row. ok is false when the file is not a
// completed run.
func (f scoreFile) score() (results.Score, bool) {
	gs := f.GameStats
	if gs == nil || !gs.Completion.TargetReached {
		return results.Score{}, false
	}
	s := results.Score{
		RunID:             f.RunID,
		PlayerName:        f.PlayerInfo.OriginalName,
		GameTimeMs:        int64(gs.TotalGameTime.Milliseconds),
		GameTimeFormatted: gs.TotalGameTime.Formatted,
		TotalWood:         int(gs.Resources.TotalWoodGained),
		TotalClicks:       int(gs.Actions.TotalClicks),
		WorkersHired:      int(gs.Actions.WorkersHired),
		FinalAxeLevel:     int(gs.Upgrades.FinalAxeLevel),
		WoodPerMinute:     int(gs.Efficiency.WoodPerMinute),
		FinalStatus:       gs.Completion.FinalStatus,
	}
	if d, err := time.Parse(time.RFC3339Nano, f.PlayerInfo.GameDate); err == nil {
		s.GameDate = d
	}
	if s.PlayerName == "" {
		s.PlayerName = "Anonyme"
	}
	if s.GameTimeFormatted == "" {
		s.GameTimeFormatted = "0:00"
	}
	if s.FinalAxeLevel == 0 {
		s.FinalAxeLevel = 1
	}
	if s.FinalStatus == "" {
		s.FinalStatus = "CHAMPION"
	}
	return s, true
}
