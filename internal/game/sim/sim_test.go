package sim_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/sim"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func catalogWithTarget(t *testing.T, beers int) *tuning.Catalog {
	t.Helper()
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(tuning.DefaultYAML(), &m))
	m["beer"].(map[string]any)["target_beers"] = beers
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	c, err := tuning.Parse(data)
	require.NoError(t, err)
	return c
}

func TestRun_WinsSmallTarget(t *testing.T) {
	rep, err := sim.Run(sim.Options{Catalog: catalogWithTarget(t, 10), Seed: 7, MaxDuration: time.Hour})
	require.NoError(t, err)
	assert.True(t, rep.Won)
	assert.True(t, rep.Final.IsWon)
	assert.GreaterOrEqual(t, rep.Final.Resources.Beer, 10)
	assert.Equal(t, rep.Purchases[tuning.Beer], rep.Final.Stats.TotalBeersConsumed)
	assert.Positive(t, rep.Duration)
	assert.Positive(t, rep.Clicks)
}

func TestRun_Deterministic(t *testing.T) {
	c := catalogWithTarget(t, 10)
	a, err := sim.Run(sim.Options{Catalog: c, Seed: 42, MaxDuration: time.Hour})
	require.NoError(t, err)
	b, err := sim.Run(sim.Options{Catalog: c, Seed: 42, MaxDuration: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, a.Duration, b.Duration)
	assert.Equal(t, a.Clicks, b.Clicks)
	assert.Equal(t, a.Purchases, b.Purchases)
}

func TestRun_StopsAtMaxDuration(t *testing.T) {
	rep, err := sim.Run(sim.Options{Catalog: tuning.MustDefault(), Seed: 1, MaxDuration: 10 * time.Second, ClicksPerSecond: 2})
	require.NoError(t, err)
	assert.False(t, rep.Won)
	assert.Equal(t, 21, rep.Clicks, "clicks at 0s, 0.5s ... 10s")
	assert.Zero(t, rep.Purchases[tuning.PrestigeUnlock])
}

func TestRun_RequiresCatalog(t *testing.T) {
	_, err := sim.Run(sim.Options{})
	assert.Error(t, err)
}

func TestRun_TraceRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tw, err := sim.NewTraceWriter(&buf)
	require.NoError(t, err)

	rep, err := sim.Run(sim.Options{Catalog: catalogWithTarget(t, 3), Seed: 3, MaxDuration: time.Hour, Trace: tw.Write})
	require.NoError(t, err)
	require.True(t, rep.Won)
	require.NoError(t, tw.Close())

	entries, err := sim.ReadTrace(&buf)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	bought := 0
	for _, e := range entries {
		if e.Action.Kind != engine.ActionChop {
			bought++
		}
	}
	total := 0
	for _, n := range rep.Purchases {
		total += n
	}
	assert.Equal(t, total, bought, "one trace entry per purchase")
	last := entries[len(entries)-1]
	assert.Equal(t, engine.ActionBuyBeer, last.Action.Kind, "the winning purchase ends the run")
	assert.Equal(t, 3, last.Beer)
}
