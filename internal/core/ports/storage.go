package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage stores generated export files.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, metadata map[string]string) (string, error)
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
