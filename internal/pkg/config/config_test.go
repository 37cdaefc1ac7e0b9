package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestViper() *viper.Viper {
	return viper.New()
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "not-a-number")
	t.Setenv("ASYNQ_QUEUES", "critical:5, low:1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("COMPAT_LEGACY_STATUS", "true")
	t.Setenv("REDIS_TTL", "90s")
	t.Setenv("EXPORT_QUEUE", "low")

	cfg, err := Load(testLogger())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int32(25), cfg.Database.MaxConnections, "malformed values fall back to the default")
	assert.Equal(t, map[string]int{"critical": 5, "low": 1}, cfg.Asynq.Queues)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Compat.LegacyStatus)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("db_name: from_file\nserver_port: \"9090\"\n"), 0o600))

	t.Setenv("APP_ENV", "test")
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load(testLogger())
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return build(&reader{v: newTestViper()}, "development")
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults_are_valid", mutate: func(*Config) {}},
		{
			name:    "missing_database_host",
			mutate:  func(c *Config) { c.Database.Host = " " },
			wantErr: "Database.Host",
		},
		{
			name:    "min_connections_above_max",
			mutate:  func(c *Config) { c.Database.MinConnections = 50 },
			wantErr: "max_connections",
		},
		{
			name:    "unknown_export_queue",
			mutate:  func(c *Config) { c.Export.Queue = "bulk" },
			wantErr: "export queue",
		},
		{
			name: "production_requires_password",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"https://app.example"}
			},
			wantErr: "database password",
		},
		{
			name: "production_rejects_wildcard_origin",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "s3cret"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
			},
			wantErr: "wildcard origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_GetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User: "u", Password: "p", Host: "h", Port: "5432", Name: "invoices", SSLMode: "disable",
	}}
	assert.Equal(t, "postgresql://u:p@h:5432/invoices?sslmode=disable", cfg.GetDatabaseURL())
}

type fakeProvider struct {
	secrets map[string]string
	err     error
}

func (f fakeProvider) GetSecrets(_ context.Context, keys []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return filterSecrets(f.secrets, keys), nil
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "invoices"

	err := ApplySecrets(context.Background(), cfg, fakeProvider{secrets: map[string]string{
		SecretDBPassword:    "db-pass",
		SecretRedisPassword: "redis-pass",
		"UNRELATED":         "x",
	}})
	require.NoError(t, err)

	assert.Equal(t, "invoices", cfg.Database.User)
	assert.Equal(t, "db-pass", cfg.Database.Password)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
	assert.Equal(t, "redis-pass", cfg.Asynq.RedisPassword)

	err = ApplySecrets(context.Background(), cfg, fakeProvider{err: errors.New("denied")})
	assert.EqualError(t, err, "denied")
}

type fakeSecretsClient struct {
	calls  int
	secret *string
}

func (f *fakeSecretsClient) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if aws.ToString(in.SecretId) != "invoices/prod" {
		return nil, errors.New("unexpected secret id")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.secret}, nil
}

func TestAWSSecretsManager_GetSecrets(t *testing.T) {
	client := &fakeSecretsClient{secret: aws.String(`{"DB_PASSWORD":"pw","DB_USER":"svc"}`)}
	sm := newAWSSecretsManager(client, "invoices/prod", testLogger())

	got, err := sm.GetSecrets(context.Background(), []string{SecretDBPassword, SecretRedisPassword})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{SecretDBPassword: "pw"}, got)

	got, err = sm.GetSecrets(context.Background(), []string{SecretDBUser})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{SecretDBUser: "svc"}, got)
	assert.Equal(t, 1, client.calls, "second read is served from cache")
}

func TestAWSSecretsManager_InvalidJSON(t *testing.T) {
	sm := newAWSSecretsManager(&fakeSecretsClient{secret: aws.String("not json")}, "invoices/prod", testLogger())

	_, err := sm.GetSecrets(context.Background(), []string{SecretDBPassword})
	assert.ErrorContains(t, err, "failed to parse secret JSON")
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv(SecretDBPassword, "from-env")

	got, err := NewEnvSecretsManager().GetSecrets(context.Background(), []string{SecretDBPassword, "NOT_SET_ANYWHERE_123"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{SecretDBPassword: "from-env"}, got)
}
