package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/valouniversaire/internal/results"
)

// RunRepository is a results.Store over the runs table.
type RunRepository struct {
	db    *pgxpool.Pool
	owned *Pool
}

var _ results.Store = (*RunRepository)(nil)

// NewRunRepository creates a RunRepository backed by the given pool.
// Close on the repository also closes pool.
//
// Precondition: pool must be non-nil and connected.
func NewRunRepository(pool *Pool) *RunRepository {
	return &RunRepository{db: pool.DB(), owned: pool}
}

// Save inserts run.
//
// Postcondition: Returns results.ErrDuplicateRun if the run id already exists.
func (r *RunRepository) Save(ctx context.Context, run results.RunSummary) error {
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	workers, err := json.Marshal(run.Workers)
	if err != nil {
		return fmt.Errorf("encoding workers: %w", err)
	}
	upgrades, err := json.Marshal(run.Upgrades)
	if err != nil {
		return fmt.Errorf("encoding upgrades: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO runs (id, player_name, started_at, completed_at, duration_ms,
			final_wood, final_beer, prestige_points, axe_level, stats, workers, upgrades)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		run.ID, run.PlayerName, run.StartedAt, run.CompletedAt, run.DurationMs,
		run.Resources.Wood, run.Resources.Beer, run.Resources.PrestigePoints, run.AxeLevel,
		stats, workers, upgrades,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return results.ErrDuplicateRun
		}
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Top returns the limit fastest runs, ranked from 1.
func (r *RunRepository) Top(ctx context.Context, limit int) ([]results.Score, error) {
	if limit <= 0 {
		limit = results.DefaultLeaderboardSize
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, player_name, started_at, completed_at, duration_ms, axe_level, stats
		FROM runs
		ORDER BY duration_ms ASC, completed_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var scores []results.Score
	for rows.Next() {
		var (
			run   results.RunSummary
			stats []byte
		)
		if err := rows.Scan(&run.ID, &run.PlayerName, &run.StartedAt, &run.CompletedAt,
			&run.DurationMs, &run.AxeLevel, &stats); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal(stats, &run.Stats); err != nil {
			return nil, fmt.Errorf("decoding stats of run %s: %w", run.ID, err)
		}
		scores = append(scores, results.ScoreOf(run))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return results.Rank(scores, limit), nil
}

// CountByPlayer returns the number of completed runs recorded for name.
func (r *RunRepository) CountByPlayer(ctx context.Context, name string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM runs WHERE player_name = $1`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// Close releases the underlying pool.
func (r *RunRepository) Close() error {
	r.owned.Close()
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
