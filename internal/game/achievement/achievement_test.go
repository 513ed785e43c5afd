package achievement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/valouniversaire/internal/game/achievement"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/scripting"
)

type fakeScripts map[string]bool

func (f fakeScripts) Predicate(hook string, _ map[string]int) bool { return f[hook] }

func ids(defs []tuning.AchievementDef) []tuning.AchievementID {
	out := make([]tuning.AchievementID, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func scriptedCatalog(t *testing.T) *tuning.Catalog {
	t.Helper()
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(tuning.DefaultYAML(), &m))
	m["achievements"].(map[string]any)["critMaster"] = map[string]any{
		"name":        "Coup de maître",
		"description": "10 coups critiques",
		"wood_reward": 50,
		"predicate":   "crit_master",
	}
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	c, err := tuning.Parse(data)
	require.NoError(t, err)
	return c
}

func TestEvaluate_Thresholds(t *testing.T) {
	e := achievement.NewEvaluator(tuning.MustDefault(), nil)
	cases := []struct {
		name string
		view achievement.View
		want tuning.AchievementID
	}{
		{"firstClick", achievement.View{TotalClicks: 1}, tuning.FirstClick},
		{"firstBeer", achievement.View{TotalBeersConsumed: 1}, tuning.FirstBeer},
		{"firstWorker", achievement.View{WorkersHired: 1}, tuning.FirstWorker},
		{"speedDemon", achievement.View{RecentClicks: 100}, tuning.SpeedDemon},
		{"lumberjack", achievement.View{TotalTreesChopped: 100}, tuning.Lumberjack},
		{"valouteMaster", achievement.View{Beer: 420, TargetBeers: 420}, tuning.ValouteMaster},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, ids(e.Evaluate(tc.view, nil)), tc.want)
		})
	}

	got := ids(e.Evaluate(achievement.View{RecentClicks: 99, TotalTreesChopped: 99, Beer: 419, TargetBeers: 420}, nil))
	assert.Empty(t, got)

	got = ids(e.Evaluate(achievement.View{TotalBeersConsumed: 50, WorkersHired: 10}, nil))
	assert.Equal(t, []tuning.AchievementID{tuning.FirstBeer, tuning.FirstWorker, tuning.BeerLover, tuning.TeamLeader}, got)
}

func TestEvaluate_SkipsUnlocked(t *testing.T) {
	e := achievement.NewEvaluator(tuning.MustDefault(), nil)
	v := achievement.View{TotalClicks: 5, WorkersHired: 2}
	unlocked := map[tuning.AchievementID]bool{}
	first := e.Evaluate(v, func(id tuning.AchievementID) bool { return unlocked[id] })
	require.Equal(t, []tuning.AchievementID{tuning.FirstClick, tuning.FirstWorker}, ids(first))
	for _, d := range first {
		unlocked[d.ID] = true
	}
	second := e.Evaluate(v, func(id tuning.AchievementID) bool { return unlocked[id] })
	assert.Empty(t, second, "re-evaluation with unchanged stats unlocks nothing")
}

func TestEvaluate_ScriptedAchievement(t *testing.T) {
	c := scriptedCatalog(t)
	e := achievement.NewEvaluator(c, fakeScripts{"crit_master": true})
	assert.Contains(t, ids(e.Evaluate(achievement.View{}, nil)), tuning.AchievementID("critMaster"))

	e = achievement.NewEvaluator(c, nil)
	assert.NotContains(t, ids(e.Evaluate(achievement.View{}, nil)), tuning.AchievementID("critMaster"))
}

func TestEvaluate_ScriptedThroughLua(t *testing.T) {
	mgr := scripting.NewManager(zap.NewNop(), 0)
	defer mgr.Close()
	require.NoError(t, mgr.LoadString("crit", `
		function crit_master(s)
			return s.criticalHits >= 10
		end
	`))
	c := scriptedCatalog(t)
	e := achievement.NewEvaluator(c, mgr)
	def, err := c.Achievement("critMaster")
	require.NoError(t, err)
	assert.False(t, e.Satisfied(def, achievement.View{CriticalHits: 9}))
	assert.True(t, e.Satisfied(def, achievement.View{CriticalHits: 10}))
}

func TestPruneClicks(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ts := []time.Time{
		now.Add(-11 * time.Second),
		now.Add(-10 * time.Second),
		now.Add(-9 * time.Second),
		now,
	}
	got := achievement.PruneClicks(ts, now)
	assert.Equal(t, []time.Time{now.Add(-9 * time.Second), now}, got)
	assert.Empty(t, achievement.PruneClicks(nil, now))
}

// TestEvaluate_UnlockedSetOnlyGrows drives random stat growth and checks each
// achievement is granted at most once.
func TestEvaluate_UnlockedSetOnlyGrows(t *testing.T) {
	e := achievement.NewEvaluator(tuning.MustDefault(), nil)
	rapid.Check(t, func(rt *rapid.T) {
		unlocked := map[tuning.AchievementID]int{}
		var v achievement.View
		v.TargetBeers = 420
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		prev := 0
		for i := 0; i < steps; i++ {
			v.TotalClicks += rapid.IntRange(0, 5).Draw(rt, "clicks")
			v.TotalTreesChopped += rapid.IntRange(0, 20).Draw(rt, "trees")
			v.TotalBeersConsumed += rapid.IntRange(0, 10).Draw(rt, "beers")
			v.WorkersHired += rapid.IntRange(0, 3).Draw(rt, "workers")
			v.Beer = v.TotalBeersConsumed
			v.RecentClicks = rapid.IntRange(0, 150).Draw(rt, "recent")
			for _, d := range e.Evaluate(v, func(id tuning.AchievementID) bool { return unlocked[id] > 0 }) {
				unlocked[d.ID]++
			}
			for id, n := range unlocked {
				require.Equal(rt, 1, n, "%s granted %d times", id, n)
			}
			require.GreaterOrEqual(rt, len(unlocked), prev)
			prev = len(unlocked)
		}
	})
}

func TestShippedScripts_UnlockScriptedAchievements(t *testing.T) {
	c, err := tuning.Load("../../../configs/tuning.yaml")
	require.NoError(t, err)
	mgr := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.LoadDir("../../../scripts/achievements"))

	for _, def := range c.Achievements() {
		if def.Predicate != "" {
			assert.True(t, mgr.Defined(def.Predicate), "%s names an undefined predicate %q", def.ID, def.Predicate)
		}
	}

	e := achievement.NewEvaluator(c, mgr)
	none := func(tuning.AchievementID) bool { return false }
	assert.NotContains(t, ids(e.Evaluate(achievement.View{CriticalHits: 49}, none)), tuning.AchievementID("critMaster"))
	assert.Contains(t, ids(e.Evaluate(achievement.View{CriticalHits: 50}, none)), tuning.AchievementID("critMaster"))

	forester := achievement.View{TotalTreesChopped: 500, AxeLevel: 9}
	assert.NotContains(t, ids(e.Evaluate(forester, none)), tuning.AchievementID("forester"))
	forester.AxeLevel = 10
	assert.Contains(t, ids(e.Evaluate(forester, none)), tuning.AchievementID("forester"))
}
