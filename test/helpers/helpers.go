// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/invoices-be/internal/adapters/db"
	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/pkg/config"
	"github.com/ammerola/invoices-be/migrations"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
	URL      string
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts a PostgreSQL container and applies the embedded
// migrations. Used by integration tests only.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_invoices",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := db.DefaultConfig()
	dbConfig.Port = resource.GetPort("5432/tcp")
	dbConfig.User = "test"
	dbConfig.Password = "test"
	dbConfig.Database = "test_invoices"
	dbConfig.MaxConnections = 5
	dbConfig.MinConnections = 1
	dbConfig.EnableQueryLogging = testing.Verbose()

	ctx := context.Background()
	var database *db.Database
	err = pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	url := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
		dbConfig.Database, dbConfig.SSLMode)

	err = db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: url,
		Embedded:    migrations.FS,
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
		URL:      url,
	}
}

// SetupTestRedis starts an in-memory Redis server for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		db.Close()
	})

	return mock, db
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "invoices-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_invoices",
			SSLMode:        "disable",
			MaxConnections: 10,
			MinConnections: 2,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Asynq: config.AsynqConfig{
			RedisAddr:   "localhost:6379",
			Concurrency: 2,
			Queues:      map[string]int{"default": 3, "low": 1},
			RetryMax:    1,
		},
		Export: config.ExportConfig{
			Queue:      "low",
			KeyPrefix:  "exports",
			URLExpiry:  15 * time.Minute,
			Retention:  24 * time.Hour,
			JobTimeout: time.Minute,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			MaxBodyBytes:      1 << 20,
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			GracefulTimeout: 5 * time.Second,
		},
	}
}

// CreateTestInvoice creates a test invoice
func CreateTestInvoice(overrides ...func(*domain.Invoice)) *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceNo:    "INV-TEST-001",
		InvoiceDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SupplierName: "Acme Pharma",
		Amount:       decimal.RequireFromString("1250.50"),
		Remarks:      "first delivery",
	}

	for _, override := range overrides {
		override(inv)
	}

	return inv
}

// CreateTestBatch creates a test batch
func CreateTestBatch(overrides ...func(*domain.Batch)) domain.Batch {
	b := domain.Batch{
		BatchNo:     "B-TEST-001",
		ProductName: "Paracetamol 500mg",
		MfgDate:     time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		ExpDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Quantity:    10,
		NumOfShips:  2,
	}

	for _, override := range overrides {
		override(&b)
	}

	return b
}

// CreateTestBatches creates count batches numbered B-<prefix>-NNN
func CreateTestBatches(prefix string, count int) []domain.Batch {
	batches := make([]domain.Batch, count)
	for i := range batches {
		batches[i] = CreateTestBatch(func(b *domain.Batch) {
			b.BatchNo = fmt.Sprintf("B-%s-%03d", prefix, i+1)
			b.Quantity = 5 + i
		})
	}
	return batches
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables empties batches and invoices
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE batches, invoices")
	require.NoError(t, err, "Failed to truncate tables")
}
