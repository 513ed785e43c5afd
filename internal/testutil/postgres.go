// Package testutil starts a throwaway PostgreSQL for the results store
// integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/valouniversaire/internal/config"
	"github.com/cory-johannsen/valouniversaire/internal/storage/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	dbUser        = "valou"
	dbName        = "valou_test"
)

// ResultsDB is a migrated results database in a container.
type ResultsDB struct {
	Pool   *postgres.Pool
	Config config.DatabaseConfig
}

// NewResultsDB starts a PostgreSQL container and opens a Pool on it with
// auto_migrate set, so the runs schema is applied exactly as the server
// applies it. Everything is released by t.Cleanup. Skipped under -short.
//
// Precondition: Docker must be available.
// Postcondition: Returns a database holding an empty runs table, or fails
// the test.
func NewResultsDB(t *testing.T) *ResultsDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()
	began := time.Now()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbUser,
				"POSTGRES_DB":       dbName,
			},
			// postgres logs readiness once for the init server and once for the real one
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting %s: %v [%s]", postgresImage, err, time.Since(began))
	}
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	cfg, err := databaseConfig(ctx, ctr)
	if err != nil {
		t.Fatalf("locating test postgres: %v", err)
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("opening migrated pool: %v [%s]", err, time.Since(began))
	}
	t.Cleanup(pool.Close)

	t.Logf("results database ready [%s]", time.Since(began))
	return &ResultsDB{Pool: pool, Config: cfg}
}

func databaseConfig(ctx context.Context, ctr testcontainers.Container) (config.DatabaseConfig, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	port, err := ctr.MappedPort(ctx, "5432")
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	return config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            dbUser,
		Password:        dbUser,
		Name:            dbName,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
		AutoMigrate:     true,
	}, nil
}

// Reset empties the runs table between subtests sharing one container.
func (db *ResultsDB) Reset(t *testing.T) {
	t.Helper()
	if _, err := db.Pool.DB().Exec(context.Background(), "TRUNCATE runs"); err != nil {
		t.Fatalf("truncating runs: %v", err)
	}
}

// DSN returns the connection string for the test database.
func (db *ResultsDB) DSN() string {
	return db.Config.DSN()
}
