// Package main applies the embedded PostgreSQL results schema with
// golang-migrate.
//
//	migrate -direction up|down|status|force [-steps N] [-version V]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/config"
	"github.com/cory-johannsen/valouniversaire/internal/observability"
	"github.com/cory-johannsen/valouniversaire/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	direction := flag.String("direction", "up", "up, down, status or force")
	steps := flag.Int("steps", 0, "number of steps for up/down (0 = all)")
	force := flag.Int("version", -1, "version recorded by force, after fixing a dirty schema by hand")
	flag.Parse()

	// VALOU_DATABASE_* variables override the file, as for the server.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = observability.Sync(logger) }()

	if err := run(cfg.Database, *direction, *steps, *force, logger); err != nil {
		logger.Error("migration failed", zap.String("direction", *direction), zap.Error(err))
		_ = observability.Sync(logger)
		os.Exit(1)
	}
}

func run(db config.DatabaseConfig, direction string, steps, force int, logger *zap.Logger) error {
	began := time.Now()
	m, err := postgres.NewMigrator(db.DSN())
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		err = apply(m.Up, m.Steps, steps)
	case "down":
		err = apply(m.Down, m.Steps, -steps)
	case "force":
		if force < 0 {
			return errors.New("force needs -version")
		}
		err = m.Force(force)
	case "status":
	default:
		return fmt.Errorf("invalid direction %q", direction)
	}
	unchanged := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !unchanged {
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("results schema is empty", zap.String("host", db.Host), zap.String("database", db.Name))
		return nil
	case err != nil:
		return fmt.Errorf("reading schema version: %w", err)
	}
	logger.Info("results schema",
		zap.String("direction", direction),
		zap.Bool("unchanged", unchanged),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.String("database", db.Name),
		zap.Duration("elapsed", time.Since(began)),
	)
	if dirty {
		return fmt.Errorf("schema version %d is dirty; fix it and rerun with -direction force -version %d", version, version)
	}
	return nil
}

// apply runs all when steps is zero, otherwise stepN(steps).
func apply(all func() error, stepN func(int) error, steps int) error {
	if steps == 0 {
		return all()
	}
	return stepN(steps)
}
