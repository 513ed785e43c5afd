// Package sqlite stores completed runs in an embedded SQLite database using
// the pure-Go modernc driver. The schema is applied with golang-migrate from
// migrations embedded in the binary.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"go.uber.org/zap"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/cory-johannsen/valouniversaire/internal/results"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a results.Store backed by a SQLite database file.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ results.Store = (*Store)(nil)

// Open opens (creating if missing) the database at path and migrates it to
// the latest schema.
//
// Precondition: path must be non-empty; logger must be non-nil.
// Postcondition: Returns a ready Store or a non-nil error.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	start := time.Now()
	version, err := migrateUp(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("sqlite results store ready",
		zap.String("path", path),
		zap.Uint("schema_version", version),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Store{db: db, logger: logger}, nil
}

func migrateUp(db *sql.DB) (uint, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("loading migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return 0, fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrating sqlite: %w", err)
	}
	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// Save inserts run. A second save of the same id returns results.ErrDuplicateRun.
func (s *Store) Save(ctx context.Context, run results.RunSummary) error {
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

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, player_name, started_at_ms, completed_at_ms, duration_ms,
			final_wood, final_beer, prestige_points, axe_level, stats, workers, upgrades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.PlayerName, run.StartedAt.UnixMilli(), run.CompletedAt.UnixMilli(),
		run.DurationMs, run.Resources.Wood, run.Resources.Beer, run.Resources.PrestigePoints,
		run.AxeLevel, string(stats), string(workers), string(upgrades),
	)
	if err != nil {
		if isConstraintError(err) {
			return results.ErrDuplicateRun
		}
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Top returns the limit fastest runs, ranked from 1.
func (s *Store) Top(ctx context.Context, limit int) ([]results.Score, error) {
	if limit <= 0 {
		limit = results.DefaultLeaderboardSize
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, started_at_ms, completed_at_ms, duration_ms, axe_level, stats
		FROM runs
		ORDER BY duration_ms ASC, completed_at_ms ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var scores []results.Score
	for rows.Next() {
		var (
			id, stats              string
			startedMs, completedMs int64
			run                    results.RunSummary
		)
		if err := rows.Scan(&id, &run.PlayerName, &startedMs, &completedMs, &run.DurationMs, &run.AxeLevel, &stats); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing run id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
			return nil, fmt.Errorf("decoding stats of run %s: %w", id, err)
		}
		run.StartedAt = time.UnixMilli(startedMs).UTC()
		run.CompletedAt = time.UnixMilli(completedMs).UTC()
		scores = append(scores, results.ScoreOf(run))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return results.Rank(scores, limit), nil
}

// Count returns the number of stored runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func isConstraintError(err error) bool {
	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
