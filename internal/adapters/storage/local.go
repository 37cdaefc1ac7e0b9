// internal/adapters/storage/local.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ammerola/invoices-be/internal/core/ports"
)

// LocalStorage implements ports.ObjectStorage on the local filesystem. It is
// used when no S3 bucket is configured.
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

var _ ports.ObjectStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new local storage client
func NewLocalStorage(basePath string, logger *slog.Logger) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
		logger:   logger.With(slog.String("storage", "local")),
	}
}

// Upload writes body to basePath/key and its metadata to a .meta.json sidecar
func (l *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string, metadata map[string]string) (string, error) {
	target, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	meta := withDefaultMetadata(metadata)
	meta["content-type"] = resolveContentType(key, contentType)
	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(target+".meta.json", data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	l.logger.InfoContext(ctx, "file stored", slog.String("path", target))
	return target, nil
}

// GetPresignedURL returns a file URL; local files do not expire.
func (l *LocalStorage) GetPresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	target, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String(), nil
}

// resolve maps key under basePath and rejects keys that escape it.
func (l *LocalStorage) resolve(key string) (string, error) {
	base, err := filepath.Abs(l.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	target := filepath.Join(base, filepath.FromSlash(key))
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return target, nil
}
