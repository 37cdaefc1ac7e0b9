package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m))
	return m
}

func TestLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "info", Format: "json", Output: &buf, ServiceName: "invoices-api"})

	ctx := ContextWithRequestID(context.Background(), "req-123")
	ctx = context.WithValue(ctx, ContextKeyPath, "/api/v1/invoice")

	l.InfoContext(ctx, "handled", slog.String("invoice_no", "INV-1"))

	line := decodeLine(t, &buf)
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "/api/v1/invoice", line["path"])
	assert.Equal(t, "INV-1", line["invoice_no"])
	assert.Equal(t, "invoices-api", line["service"])
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-9")
	l.WithContext(ctx).Debug("plain call")

	assert.Equal(t, "req-9", decodeLine(t, &buf)["request_id"])
	assert.Equal(t, "req-9", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestLogger_Sanitization(t *testing.T) {
	tests := []struct {
		name   string
		log    func(l *Logger)
		key    string
		want   string
		absent string
	}{
		{
			name:   "blacklisted_key",
			log:    func(l *Logger) { l.Info("connect", slog.String("db_password", "hunter2")) },
			key:    "db_password",
			want:   "***REDACTED***",
			absent: "hunter2",
		},
		{
			name:   "secret_in_message",
			log:    func(l *Logger) { l.Info("token=abc123 sent") },
			key:    "msg",
			want:   "token=***REDACTED*** sent",
			absent: "abc123",
		},
		{
			name:   "database_url",
			log:    func(l *Logger) { l.Info("migrating", slog.String("url", "postgresql://svc:pw@db:5432/invoices")) },
			key:    "url",
			want:   "postgresql://svc:***REDACTED***@db:5432/invoices",
			absent: ":pw@",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(&LogConfig{Level: "info", Format: "json", Output: &buf})

			tt.log(l)

			assert.NotContains(t, buf.String(), tt.absent)
			assert.Equal(t, tt.want, decodeLine(t, &buf)[tt.key])
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "warn", Format: "json", Output: &buf})

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "info", Format: "text", Output: &buf})

	l.With(slog.String("handler", "invoice")).Info("created", slog.Int("batches", 2))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "handler\033[0m=invoice")
	assert.Contains(t, out, "batches\033[0m=2")
}
