// internal/pkg/config/config.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Asynq    AsynqConfig
	AWS      AWSConfig
	Export   ExportConfig
	Security SecurityConfig
	Server   ServerConfig
	Compat   CompatConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `required:"true"`
	Port               string `required:"true"`
	User               string `required:"true"`
	Password           string
	Name               string `required:"true"`
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	AutoMigrate        bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host            string `required:"true"`
	Port            string `required:"true"`
	Password        string
	DB              int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
	TTL             time.Duration
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	StrictPriority  bool
	RetryMax        int
	ShutdownTimeout time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
	SecretName      string // Secrets Manager secret holding credentials
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Queue      string
	KeyPrefix  string
	URLExpiry  time.Duration
	Retention  time.Duration
	JobTimeout time.Duration
	// LocalDir receives exports when no S3 bucket is configured.
	LocalDir   string
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	SecureHeaders     bool
	MaxBodyBytes      int64
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string `required:"true"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	GracefulTimeout time.Duration
}

// CompatConfig toggles behavior kept for older clients.
type CompatConfig struct {
	// LegacyStatus reports every failure as 500 and a missing invoice on
	// read as an empty result.
	LegacyStatus bool
}

// Load loads configuration from environment variables, an optional
// CONFIG_FILE and, when AWS_SECRET_NAME is set, AWS Secrets Manager.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" || env == "test" {
		// .env.<env> wins over .env; godotenv never overrides real env vars.
		_ = godotenv.Load(".env." + env)
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		logger.Info("config file loaded", slog.String("file", v.ConfigFileUsed()))
	}

	cfg := build(&reader{v: v}, env)

	if cfg.AWS.SecretName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sm, err := NewAWSSecretsManager(ctx, cfg.AWS.Region, cfg.AWS.SecretName, logger)
		if err != nil {
			return nil, err
		}
		if err := ApplySecrets(ctx, cfg, sm); err != nil {
			return nil, fmt.Errorf("failed to apply secrets: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func build(r *reader, env string) *Config {
	redisHost := r.str("REDIS_HOST", "localhost")
	redisPort := r.str("REDIS_PORT", "6379")

	return &Config{
		App: AppConfig{
			Name:        r.str("APP_NAME", "invoices-api"),
			Environment: env,
			Version:     r.str("APP_VERSION", "dev"),
			LogLevel:    r.str("LOG_LEVEL", "info"),
			LogFormat:   r.str("LOG_FORMAT", "json"),
			Debug:       r.boolean("APP_DEBUG", env == "development"),
		},
		Database: DatabaseConfig{
			Host:               r.str("DB_HOST", "localhost"),
			Port:               r.str("DB_PORT", "5432"),
			User:               r.str("DB_USER", "invoices"),
			Password:           r.str("DB_PASSWORD", ""),
			Name:               r.str("DB_NAME", "invoices"),
			SSLMode:            r.str("DB_SSL_MODE", "disable"),
			MaxConnections:     int32(r.integer("DB_MAX_CONNECTIONS", 25)),
			MinConnections:     int32(r.integer("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime:    r.duration("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    r.duration("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  r.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     r.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
			StatementCacheMode: r.str("DB_STATEMENT_CACHE_MODE", "describe"),
			EnableQueryLogging: r.boolean("DB_QUERY_LOGGING", false),
			AutoMigrate:        r.boolean("DB_AUTO_MIGRATE", env != "production"),
		},
		Redis: RedisConfig{
			Host:            redisHost,
			Port:            redisPort,
			Password:        r.str("REDIS_PASSWORD", ""),
			DB:              r.integer("REDIS_DB", 0),
			MaxRetries:      r.integer("REDIS_MAX_RETRIES", 3),
			MinRetryBackoff: r.duration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: r.duration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			DialTimeout:     r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:        r.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns:    r.integer("REDIS_MIN_IDLE_CONNS", 2),
			PoolTimeout:     r.duration("REDIS_POOL_TIMEOUT", 4*time.Second),
			TTL:             r.duration("REDIS_TTL", 5*time.Minute),
		},
		Asynq: AsynqConfig{
			RedisAddr:       fmt.Sprintf("%s:%s", redisHost, redisPort),
			RedisPassword:   r.str("REDIS_PASSWORD", ""),
			RedisDB:         r.integer("ASYNQ_REDIS_DB", 1),
			Concurrency:     r.integer("ASYNQ_CONCURRENCY", 4),
			Queues:          parseQueues(r.str("ASYNQ_QUEUES", "critical:6,default:3,low:1")),
			StrictPriority:  r.boolean("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:        r.integer("ASYNQ_RETRY_MAX", 3),
			ShutdownTimeout: r.duration("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		AWS: AWSConfig{
			Region:          r.str("AWS_REGION", "us-east-1"),
			AccessKeyID:     r.str("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: r.str("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        r.str("AWS_S3_BUCKET", "invoice-exports"),
			S3Endpoint:      r.str("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    r.boolean("AWS_S3_PATH_STYLE", env == "development"),
			SecretName:      r.str("AWS_SECRET_NAME", ""),
		},
		Export: ExportConfig{
			Queue:      r.str("EXPORT_QUEUE", "low"),
			KeyPrefix:  r.str("EXPORT_KEY_PREFIX", "exports"),
			URLExpiry:  r.duration("EXPORT_URL_EXPIRY", time.Hour),
			Retention:  r.duration("EXPORT_RETENTION", 24*time.Hour),
			JobTimeout: r.duration("EXPORT_JOB_TIMEOUT", 5*time.Minute),
			LocalDir:   r.str("EXPORT_LOCAL_DIR", "./data/exports"),
		},
		Security: SecurityConfig{
			RateLimitRequests: r.integer("RATE_LIMIT_REQUESTS", 100),
			RateLimitDuration: r.duration("RATE_LIMIT_DURATION", time.Minute),
			AllowedOrigins:    r.slice("ALLOWED_ORIGINS", []string{"*"}),
			SecureHeaders:     r.boolean("SECURE_HEADERS", env == "production"),
			MaxBodyBytes:      int64(r.integer("MAX_BODY_BYTES", 1<<20)),
		},
		Server: ServerConfig{
			Host:            r.str("SERVER_HOST", "0.0.0.0"),
			Port:            r.str("SERVER_PORT", "8080"),
			ReadTimeout:     r.duration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    r.duration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     r.duration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes:  r.integer("SERVER_MAX_HEADER_BYTES", 1<<20),
			GracefulTimeout: r.duration("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
		},
		Compat: CompatConfig{
			LegacyStatus: r.boolean("COMPAT_LEGACY_STATUS", false),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := (&BasicValidator{}).Validate(c); err != nil {
		return err
	}
	if c.IsProduction() {
		return (&ProductionValidator{}).Validate(c)
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetRedisAddress returns host:port of the cache Redis.
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// reader resolves keys through viper (environment first, then the optional
// config file) and falls back to the given default when a value is absent
// or malformed.
type reader struct {
	v *viper.Viper
}

func (r *reader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(r.v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func (r *reader) boolean(key string, defaultValue bool) bool {
	if value := r.v.GetString(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func (r *reader) integer(key string, defaultValue int) int {
	if value := r.v.GetString(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func (r *reader) duration(key string, defaultValue time.Duration) time.Duration {
	if value := r.v.GetString(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func (r *reader) slice(key string, defaultValue []string) []string {
	value := r.v.GetString(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	pairs := strings.Split(queuesStr, ",")
	for _, pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			name := strings.TrimSpace(parts[0])
			priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err == nil && name != "" {
				queues[name] = priority
			}
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
