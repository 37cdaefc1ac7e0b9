// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/invoices-be/internal/adapters/db"
	"github.com/ammerola/invoices-be/internal/adapters/queue"
	redis_a "github.com/ammerola/invoices-be/internal/adapters/redis_adapter"
	"github.com/ammerola/invoices-be/internal/core/ports"
	"github.com/ammerola/invoices-be/internal/core/services"
	"github.com/ammerola/invoices-be/internal/handlers"
	"github.com/ammerola/invoices-be/internal/handlers/middleware"
	"github.com/ammerola/invoices-be/internal/pkg/config"
	"github.com/ammerola/invoices-be/internal/pkg/logger"
	"github.com/ammerola/invoices-be/migrations"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	slogger := logger.SetupLogger("debug", "json").Logger

	slogger.Info("starting invoice service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
		slog.Bool("legacy_status", cfg.Compat.LegacyStatus),
	)

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := runMigrationCommand(ctx, cfg, *migrateCmd, slogger); err != nil {
			slogger.Error("migration command failed",
				slog.String("command", *migrateCmd),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrationsWithRetry(ctx, migrationConfig(cfg), slogger, 3); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			_ = server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       ports.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	invoiceHandler *handlers.InvoiceHandler
	exportHandler  *handlers.ExportHandler
	healthHandler  *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
	if d.asynqClient != nil {
		_ = d.asynqClient.Close()
	}
	if d.asynqInspector != nil {
		_ = d.asynqInspector.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("addr", cfg.GetRedisAddress()))

	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.GetRedisAddress(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})
	deps.redisClient = redisClient

	// Reads fall through to Postgres when Redis is down, so a failed ping
	// only warns.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, serving reads from the database",
			slog.String("error", err.Error()))
	}
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	exportQueue := queue.NewExportQueue(deps.asynqClient, deps.asynqInspector, queue.Options{
		Queue:     cfg.Export.Queue,
		MaxRetry:  cfg.Asynq.RetryMax,
		Timeout:   cfg.Export.JobTimeout,
		Retention: cfg.Export.Retention,
	}, logger)

	invoiceService := services.NewInvoiceService(
		db.NewInvoiceRepository(database, logger),
		db.NewBatchRepository(database, logger),
		database,
		cache,
		logger,
	)

	deps.invoiceHandler = handlers.NewInvoiceHandler(invoiceService, cfg.Compat.LegacyStatus, logger)
	deps.exportHandler = handlers.NewExportHandler(invoiceService, exportQueue, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, cache, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.Register(mux, deps.invoiceHandler, deps.exportHandler, deps.healthHandler)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.MaxBodySize(cfg.Security.MaxBodyBytes)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func migrationConfig(cfg *config.Config) *db.MigrationConfig {
	return &db.MigrationConfig{
		DatabaseURL:  cfg.GetDatabaseURL(),
		Embedded:     migrations.FS,
		EmbeddedPath: ".",
		TableName:    "schema_migrations",
		SchemaName:   "public",
	}
}

func runMigrationCommand(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	migrator, err := db.NewMigrator(ctx, migrationConfig(cfg), logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch command {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration status",
			slog.Uint64("version", uint64(status.CurrentVersion)),
			slog.Bool("dirty", status.IsDirty),
			slog.Int("applied", len(status.Applied)))
		return nil
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
