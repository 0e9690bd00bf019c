package testhelper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/migrations"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// dsnEnv points the tests at an existing database instead of a container.
const dsnEnv = "TEST_DATABASE_DSN"

// SetupTestDB returns a pool on a migrated database shared by the whole test
// run. The database is TEST_DATABASE_DSN when set, otherwise a PostgreSQL
// container started on first use. Tests are skipped in -short mode.
// The pool is closed via t.Cleanup; the container lives until the process exits.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: database tests skipped in -short mode")
	}

	once.Do(func() {
		if dsn := os.Getenv(dsnEnv); dsn != "" {
			sharedDSN, initErr = dsn, migrate(dsn)
			return
		}
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		DSN:             sharedDSN,
		MaxConns:        10,
		ApplicationName: "langcoach-tests",
	}, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("testhelper: failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	if err := migrate(dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

func migrate(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return postgres.Migrate(ctx, dsn, migrations.FS, slog.New(slog.DiscardHandler))
}
