// Package achievement evaluates achievement predicates against a player's
// cumulative statistics. It holds no state: the caller owns the set of
// already-unlocked achievements and applies the rewards.
package achievement

import (
	"time"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// Speed achievement window: SpeedClicks manual chops within SpeedWindow.
const (
	SpeedWindow = 10 * time.Second
	SpeedClicks = 100
)

// View is the read-only projection of player state that predicates inspect.
type View struct {
	TotalClicks        int
	TotalTreesChopped  int
	TotalWoodGained    int
	TotalBeersConsumed int
	WorkersHired       int
	CriticalHits       int
	PrestigeCount      int
	Wood               int
	Beer               int
	AxeLevel           int
	PrestigePoints     int
	TargetBeers        int
	// RecentClicks is the number of manual chops inside the trailing SpeedWindow.
	RecentClicks int
}

// Fields returns v as the table handed to scripted predicates.
func (v View) Fields() map[string]int {
	return map[string]int{
		"totalClicks":        v.TotalClicks,
		"totalTreesChopped":  v.TotalTreesChopped,
		"totalWoodGained":    v.TotalWoodGained,
		"totalBeersConsumed": v.TotalBeersConsumed,
		"workersHired":       v.WorkersHired,
		"criticalHits":       v.CriticalHits,
		"prestigeCount":      v.PrestigeCount,
		"wood":               v.Wood,
		"beer":               v.Beer,
		"axeLevel":           v.AxeLevel,
		"prestigePoints":     v.PrestigePoints,
		"targetBeers":        v.TargetBeers,
		"recentClicks":       v.RecentClicks,
	}
}

var builtin = map[tuning.AchievementID]func(View) bool{
	tuning.FirstClick:    func(v View) bool { return v.TotalClicks >= 1 },
	tuning.FirstBeer:     func(v View) bool { return v.TotalBeersConsumed >= 1 },
	tuning.FirstWorker:   func(v View) bool { return v.WorkersHired >= 1 },
	tuning.SpeedDemon:    func(v View) bool { return v.RecentClicks >= SpeedClicks },
	tuning.Lumberjack:    func(v View) bool { return v.TotalTreesChopped >= 100 },
	tuning.BeerLover:     func(v View) bool { return v.TotalBeersConsumed >= 50 },
	tuning.TeamLeader:    func(v View) bool { return v.WorkersHired >= 10 },
	tuning.ValouteMaster: func(v View) bool { return v.TargetBeers > 0 && v.Beer >= v.TargetBeers },
}

// Scripts evaluates named predicates supplied by catalog scripts.
type Scripts interface {
	Predicate(hook string, fields map[string]int) bool
}

// Evaluator checks the catalog's achievements against a View.
type Evaluator struct {
	catalog *tuning.Catalog
	scripts Scripts
}

// NewEvaluator returns an Evaluator for catalog. scripts may be nil, in which
// case scripted achievements are never satisfied.
//
// Precondition: catalog must not be nil.
func NewEvaluator(catalog *tuning.Catalog, scripts Scripts) *Evaluator {
	if catalog == nil {
		panic("achievement.NewEvaluator: catalog must not be nil")
	}
	return &Evaluator{catalog: catalog, scripts: scripts}
}

// Satisfied reports whether def's predicate holds for v.
func (e *Evaluator) Satisfied(def tuning.AchievementDef, v View) bool {
	if pred, ok := builtin[def.ID]; ok {
		return pred(v)
	}
	if def.Predicate == "" || e.scripts == nil {
		return false
	}
	return e.scripts.Predicate(def.Predicate, v.Fields())
}

// Evaluate returns the achievements satisfied by v that unlocked does not
// report as already granted, in catalog order.
//
// Postcondition: no returned definition satisfies unlocked(def.ID).
func (e *Evaluator) Evaluate(v View, unlocked func(tuning.AchievementID) bool) []tuning.AchievementDef {
	var out []tuning.AchievementDef
	var fields map[string]int
	for _, def := range e.catalog.Achievements() {
		if unlocked != nil && unlocked(def.ID) {
			continue
		}
		if pred, ok := builtin[def.ID]; ok {
			if pred(v) {
				out = append(out, def)
			}
			continue
		}
		if def.Predicate == "" || e.scripts == nil {
			continue
		}
		if fields == nil {
			fields = v.Fields()
		}
		if e.scripts.Predicate(def.Predicate, fields) {
			out = append(out, def)
		}
	}
	return out
}

// PruneClicks drops the timestamps that fall outside the trailing SpeedWindow
// ending at now. ts must be in ascending order; the result aliases ts.
func PruneClicks(ts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-SpeedWindow)
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}
