package results_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/results"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func wonSnapshot(name string, d time.Duration) engine.Snapshot {
	start := t0
	won := t0.Add(d)
	return engine.Snapshot{
		PlayerName: name,
		Resources:  engine.Resources{Wood: 12, Beer: 420},
		AxeLevel:   7,
		Workers:    map[tuning.WorkerID]int{tuning.PtitLu: 3},
		Stats: engine.Stats{
			TotalClicks:     900,
			TotalWoodGained: 6000,
			WorkersHired:    3,
		},
		IsWon:      true,
		StartedAt:  &start,
		WonAt:      &won,
		DurationMs: d.Milliseconds(),
	}
}

func TestNewRunSummary(t *testing.T) {
	run, err := results.NewRunSummary(wonSnapshot("Valou", 10*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, "Valou", run.PlayerName)
	assert.Equal(t, int64(600_000), run.DurationMs)
	assert.Equal(t, t0.Add(10*time.Minute), run.CompletedAt)
	assert.Equal(t, 600, run.WoodPerMinute())
}

func TestNewRunSummary_NotWon(t *testing.T) {
	s := wonSnapshot("Valou", time.Minute)
	s.IsWon = false
	_, err := results.NewRunSummary(s)
	assert.ErrorIs(t, err, results.ErrNotWon)

	s = wonSnapshot("Valou", time.Minute)
	s.StartedAt = nil
	_, err = results.NewRunSummary(s)
	assert.ErrorIs(t, err, results.ErrNotWon)
}

func TestScoreOf(t *testing.T) {
	run, err := results.NewRunSummary(wonSnapshot("Valou", 125*time.Second))
	require.NoError(t, err)
	score := results.ScoreOf(run)
	assert.Equal(t, "2:05", score.GameTimeFormatted)
	assert.Equal(t, 6000, score.TotalWood)
	assert.Equal(t, 900, score.TotalClicks)
	assert.Equal(t, 7, score.FinalAxeLevel)
	assert.Equal(t, results.StatusLegend, score.FinalStatus)
	assert.Zero(t, score.Rank)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", results.FormatClock(0))
	assert.Equal(t, "0:00", results.FormatClock(-5))
	assert.Equal(t, "1:01", results.FormatClock(61_500))
	assert.Equal(t, "75:00", results.FormatClock(75*60_000))
}

func TestRank(t *testing.T) {
	scores := []results.Score{
		{PlayerName: "slow", GameTimeMs: 900},
		{PlayerName: "fast", GameTimeMs: 100},
		{PlayerName: "late-tie", GameTimeMs: 500, GameDate: t0.Add(time.Hour)},
		{PlayerName: "early-tie", GameTimeMs: 500, GameDate: t0},
	}
	ranked := results.Rank(scores, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "fast", ranked[0].PlayerName)
	assert.Equal(t, "early-tie", ranked[1].PlayerName)
	assert.Equal(t, "late-tie", ranked[2].PlayerName)
	for i, s := range ranked {
		assert.Equal(t, i+1, s.Rank)
	}
	assert.Equal(t, 0, scores[0].Rank, "input is not mutated")

	assert.NotNil(t, results.Rank(nil, 5))
	assert.Len(t, results.Rank(scores, 0), 4)
}

func TestRank_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := rapid.SliceOf(rapid.Int64Range(0, 1_000_000)).Draw(t, "times")
		limit := rapid.IntRange(1, 30).Draw(t, "limit")
		scores := make([]results.Score, len(times))
		for i, ms := range times {
			scores[i] = results.Score{GameTimeMs: ms}
		}
		ranked := results.Rank(scores, limit)
		if len(ranked) > limit {
			t.Fatalf("got %d rows for limit %d", len(ranked), limit)
		}
		for i := range ranked {
			if ranked[i].Rank != i+1 {
				t.Fatalf("row %d has rank %d", i, ranked[i].Rank)
			}
			if i > 0 && ranked[i-1].GameTimeMs > ranked[i].GameTimeMs {
				t.Fatalf("rows %d and %d out of order", i-1, i)
			}
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := results.NewMemoryStore()
	a, _ := results.NewRunSummary(wonSnapshot("a", 3*time.Minute))
	b, _ := results.NewRunSummary(wonSnapshot("b", time.Minute))
	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, store.Save(ctx, b))
	assert.ErrorIs(t, store.Save(ctx, a), results.ErrDuplicateRun)

	top, err := store.Top(ctx, 20)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].PlayerName)
	assert.Equal(t, 1, top[0].Rank)
}

type failingStore struct {
	results.MemoryStore
	err error
}

func (f *failingStore) Save(context.Context, results.RunSummary) error { return f.err }

func TestRecorder_Saves(t *testing.T) {
	store := results.NewMemoryStore()
	core, logs := observer.New(zap.InfoLevel)
	rec := results.NewRecorder(store, zap.New(core), 0)

	run, _ := results.NewRunSummary(wonSnapshot("Valou", time.Minute))
	rec.Record(run)
	rec.Wait()

	assert.Equal(t, 1, store.Runs())
	assert.Equal(t, 1, logs.FilterMessage("completed run saved").Len())
}

func TestRecorder_ReportsFailure(t *testing.T) {
	boom := errors.New("disk full")
	core, logs := observer.New(zap.InfoLevel)
	rec := results.NewRecorder(&failingStore{err: boom}, zap.New(core), time.Second)

	var mu sync.Mutex
	var got []*results.PersistenceError
	rec.OnError(func(e *results.PersistenceError) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})

	run, _ := results.NewRunSummary(wonSnapshot("Valou", time.Minute))
	rec.Record(run)
	require.NoError(t, rec.Close())

	require.Len(t, got, 1)
	assert.Equal(t, run.ID, got[0].RunID)
	assert.ErrorIs(t, got[0], boom)
	assert.Contains(t, got[0].Error(), "Valou")
	assert.Equal(t, 1, logs.FilterMessage("saving completed run").Len())
}

func TestNewRecorder_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { results.NewRecorder(nil, zap.NewNop(), 0) })
	assert.Panics(t, func() { results.NewRecorder(results.NewMemoryStore(), nil, 0) })
}
