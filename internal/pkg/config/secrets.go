// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Secret keys understood by ApplySecrets.
const (
	SecretDBUser        = "DB_USER"
	SecretDBPassword    = "DB_PASSWORD"
	SecretRedisPassword = "REDIS_PASSWORD"
)

// SecretsProvider resolves a set of secret keys.
type SecretsProvider interface {
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
}

// secretValueGetter is the part of the Secrets Manager client we use.
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a JSON key/value secret from AWS Secrets Manager
// and caches it for ttl.
type AWSSecretsManager struct {
	client     secretValueGetter
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newAWSSecretsManager(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretsManager(client secretValueGetter, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecrets retrieves multiple secrets. Keys absent from the secret are
// left out of the result.
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	sm.cacheMu.RLock()
	if time.Since(sm.lastFetch) < sm.ttl && len(sm.cache) > 0 {
		cached := filterSecrets(sm.cache, keys)
		sm.cacheMu.RUnlock()
		sm.logger.DebugContext(ctx, "returning cached secrets")
		return cached, nil
	}
	sm.cacheMu.RUnlock()

	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var secretData map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &secretData); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.cacheMu.Lock()
	sm.cache = secretData
	sm.lastFetch = time.Now()
	sm.cacheMu.Unlock()

	return filterSecrets(secretData, keys), nil
}

func filterSecrets(all map[string]string, keys []string) map[string]string {
	filtered := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := all[key]; ok {
			filtered[key] = val
		}
	}
	return filtered
}

// EnvSecretsManager implements secrets management using environment variables
type EnvSecretsManager struct{}

// NewEnvSecretsManager creates a new environment-based secrets manager
func NewEnvSecretsManager() *EnvSecretsManager {
	return &EnvSecretsManager{}
}

// GetSecrets retrieves multiple secrets from environment variables
func (em *EnvSecretsManager) GetSecrets(_ context.Context, keys []string) (map[string]string, error) {
	secrets := make(map[string]string)
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			secrets[key] = val
		}
	}
	return secrets, nil
}

// ApplySecrets overwrites credential fields of cfg with the values the
// provider knows about.
func ApplySecrets(ctx context.Context, cfg *Config, provider SecretsProvider) error {
	secrets, err := provider.GetSecrets(ctx, []string{SecretDBUser, SecretDBPassword, SecretRedisPassword})
	if err != nil {
		return err
	}

	if v, ok := secrets[SecretDBUser]; ok {
		cfg.Database.User = v
	}
	if v, ok := secrets[SecretDBPassword]; ok {
		cfg.Database.Password = v
	}
	if v, ok := secrets[SecretRedisPassword]; ok {
		cfg.Redis.Password = v
		cfg.Asynq.RedisPassword = v
	}
	return nil
}
