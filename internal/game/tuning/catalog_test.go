package tuning_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// mutated returns the default catalog YAML after applying fn to its decoded form.
func mutated(t *testing.T, fn func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(tuning.DefaultYAML(), &m))
	fn(m)
	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	return out
}

func section(m map[string]any, key string) map[string]any {
	return m[key].(map[string]any)
}

func configErrorKeys(err error) []string {
	var keys []string
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var ce *tuning.ConfigurationError
		if errors.As(e, &ce) {
			keys = append(keys, ce.Key)
		}
	}
	walk(err)
	return keys
}

func TestDefault_IsValid(t *testing.T) {
	c, err := tuning.Default()
	require.NoError(t, err)

	base, err := c.BasePrice(tuning.AxeUpgrade)
	require.NoError(t, err)
	assert.Equal(t, 15, base)

	mult, err := c.Multiplier(tuning.AxeUpgrade)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, mult, 1e-9)

	assert.Equal(t, []tuning.WorkerID{tuning.PtitLu, tuning.Mathieu, tuning.Vico}, c.Workers())
	speed, err := c.WorkerSpeed(tuning.Vico)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, speed)

	assert.Equal(t, 420, c.Beer().TargetBeers)
	assert.Equal(t, 1000, c.Beer().PrestigeBeers)
	assert.Equal(t, 100, c.Prestige().BeersPerPoint)
	assert.Equal(t, time.Second, c.AutoClicker().Speed)
	assert.Len(t, c.Achievements(), len(tuning.BuiltinAchievements))
}

func TestAccessors_MissingKeyIsConfigurationError(t *testing.T) {
	c := tuning.MustDefault()

	_, err := c.Multiplier("chainsaw")
	var ce *tuning.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "price_multipliers.chainsaw", ce.Key)

	_, err = c.BasePrice("chainsaw")
	require.ErrorAs(t, err, &ce)

	_, err = c.WorkerEfficiency("bob")
	require.ErrorAs(t, err, &ce)

	_, err = c.WorkerSpeed("bob")
	require.ErrorAs(t, err, &ce)

	_, err = c.Achievement("nope")
	require.ErrorAs(t, err, &ce)

	_, err = c.Multiplier(tuning.PrestigeUnlock)
	require.ErrorAs(t, err, &ce, "prestige unlock has a fixed price and no multiplier")
}

func TestParse_MissingMultiplierIsRejected(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		delete(section(m, "price_multipliers"), "mathieu")
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "price_multipliers.mathieu")
}

func TestParse_MultiplierBelowOneIsRejected(t *testing.T) {
	for _, bad := range []float64{0, -1, 0.99} {
		data := mutated(t, func(m map[string]any) {
			section(m, "price_multipliers")["beer"] = bad
		})
		_, err := tuning.Parse(data)
		require.Error(t, err, "multiplier %g must be rejected", bad)
		assert.Contains(t, configErrorKeys(err), "price_multipliers.beer")
	}
}

func TestParse_ProbabilityOutOfRange(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		section(m, "tree")["critical_chance"] = 1.5
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "tree.critical_chance")
}

func TestParse_TreeRangeInverted(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		section(m, "tree")["min_hp"] = 10
		section(m, "tree")["max_hp"] = 3
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "tree.max_hp")
}

func TestParse_MissingTreeParameterIsNotZeroFilled(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		delete(section(m, "tree"), "wood_max")
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "tree.wood_max")
}

func TestParse_ReportsEveryViolation(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		delete(section(m, "prices"), "vico")
		delete(section(m, "auto_upgrades"), "goldenAxe")
		delete(section(m, "achievements"), "speedDemon")
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	keys := configErrorKeys(err)
	assert.Contains(t, keys, "prices.vico")
	assert.Contains(t, keys, "auto_upgrades.goldenAxe")
	assert.Contains(t, keys, "achievements.speedDemon")
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		m["chainsaws"] = 3
	})
	_, err := tuning.Parse(data)
	assert.Error(t, err)
}

func TestParse_UnknownPurchasableRejected(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		section(m, "prices")["chainsaw"] = 10
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "prices.chainsaw")
}

func TestParse_ExtraWorkerTier(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		section(m, "prices")["bucheron"] = 5000
		section(m, "price_multipliers")["bucheron"] = 1.25
		section(m, "worker_efficiency")["bucheron"] = 20
		section(m, "worker_speed_ms")["bucheron"] = 250
	})
	c, err := tuning.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, tuning.WorkerID("bucheron"), c.Workers()[3])
	assert.True(t, c.HasWorker("bucheron"))
}

func TestParse_WorkerWithoutSpeed(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		delete(section(m, "worker_speed_ms"), "vico")
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "worker_speed_ms.vico")
}

func TestParse_ScriptedAchievementNeedsPredicate(t *testing.T) {
	data := mutated(t, func(m map[string]any) {
		section(m, "achievements")["critMaster"] = map[string]any{
			"name":        "Coup de maître",
			"wood_reward": 50,
		}
	})
	_, err := tuning.Parse(data)
	require.Error(t, err)
	assert.Contains(t, configErrorKeys(err), "achievements.critMaster.predicate")

	data = mutated(t, func(m map[string]any) {
		section(m, "achievements")["critMaster"] = map[string]any{
			"name":        "Coup de maître",
			"wood_reward": 50,
			"predicate":   "crit_master",
		}
	})
	c, err := tuning.Parse(data)
	require.NoError(t, err)
	defs := c.Achievements()
	last := defs[len(defs)-1]
	assert.Equal(t, tuning.AchievementID("critMaster"), last.ID)
	assert.Equal(t, "crit_master", last.Predicate)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, tuning.DefaultYAML(), 0o644))
	c, err := tuning.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Tree().MinHP)
}

func TestLoad_InvalidPath(t *testing.T) {
	_, err := tuning.Load("/nonexistent/tuning.yaml")
	assert.Error(t, err)
}

func TestTable_MirrorsCatalog(t *testing.T) {
	table := tuning.MustDefault().Table()
	assert.Equal(t, 25, table.Prices[tuning.PtitLu.Purchasable()])
	assert.Equal(t, int64(1200), table.WorkerSpeed[tuning.PtitLu])
	assert.Equal(t, 12, table.Tree.MaxHP)
	assert.Equal(t, int64(1000), table.AutoUpgrades.AutoClicker.Speed)
	require.NotEmpty(t, table.Achievements)
	assert.Equal(t, tuning.FirstClick, table.Achievements[0].ID)
}
