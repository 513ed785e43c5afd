package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/results"
	"github.com/cory-johannsen/valouniversaire/internal/storage/postgres"
	"github.com/cory-johannsen/valouniversaire/internal/testutil"
)

func setupRuns(t *testing.T) (*postgres.RunRepository, *testutil.ResultsDB) {
	t.Helper()
	db := testutil.NewResultsDB(t)
	return postgres.NewRunRepository(db.Pool), db
}

func makeRun(name string, d time.Duration) results.RunSummary {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return results.RunSummary{
		ID:          uuid.New(),
		PlayerName:  name,
		StartedAt:   start,
		CompletedAt: start.Add(d),
		DurationMs:  d.Milliseconds(),
		Resources:   engine.Resources{Wood: 5, Beer: 430},
		Stats: engine.Stats{
			TotalClicks:          1000,
			TotalWoodGained:      9000,
			WorkersHired:         6,
			AchievementsUnlocked: []tuning.AchievementID{tuning.FirstClick, tuning.FirstBeer},
		},
		AxeLevel: 9,
		Workers:  map[tuning.WorkerID]int{tuning.PtitLu: 4, tuning.Vico: 2},
		Upgrades: map[tuning.UpgradeID]int{tuning.AutoClicker: 1},
	}
}

func TestRunRepository(t *testing.T) {
	repo, db := setupRuns(t)
	ctx := context.Background()

	slow := makeRun("Lent", 40*time.Minute)
	fast := makeRun("Rapide", 15*time.Minute)
	again := makeRun("Rapide", 25*time.Minute)
	for _, r := range []results.RunSummary{slow, fast, again} {
		require.NoError(t, repo.Save(ctx, r))
	}

	t.Run("duplicate id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Save(ctx, fast), results.ErrDuplicateRun)
	})

	t.Run("top is ranked fastest first", func(t *testing.T) {
		top, err := repo.Top(ctx, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, fast.ID.String(), top[0].RunID)
		assert.Equal(t, 1, top[0].Rank)
		assert.Equal(t, 9000, top[0].TotalWood)
		assert.Equal(t, 600, top[0].WoodPerMinute)
		assert.True(t, top[0].GameDate.Equal(fast.CompletedAt))
		assert.Equal(t, again.ID.String(), top[1].RunID)
		assert.Equal(t, 2, top[1].Rank)
	})

	t.Run("count by player", func(t *testing.T) {
		n, err := repo.CountByPlayer(ctx, "Rapide")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		version, err := postgres.Migrate(db.DSN())
		require.NoError(t, err)
		assert.Equal(t, uint(1), version)
	})

	t.Run("reset empties the leaderboard", func(t *testing.T) {
		db.Reset(t)
		top, err := repo.Top(ctx, 20)
		require.NoError(t, err)
		assert.Empty(t, top)
	})
}
