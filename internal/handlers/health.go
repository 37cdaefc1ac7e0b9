// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/invoices-be/internal/adapters/redis_adapter"
	"github.com/ammerola/invoices-be/internal/core/ports"
	"github.com/ammerola/invoices-be/internal/pkg/config"
)

// QueueInspector is the subset of *asynq.Inspector used by the probes.
type QueueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
}

type cacheStatsReporter interface {
	Stats() redis_a.CacheStats
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        ports.Database
	cache     ports.CacheRepository
	asynq     QueueInspector
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. cache and inspector may be nil.
func NewHealthHandler(
	database ports.Database,
	cache ports.CacheRepository,
	inspector QueueInspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:        database,
		cache:     cache,
		asynq:     inspector,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthStatus is the liveness payload
type HealthStatus struct {
	Status      string     `json:"status"`
	Version     string     `json:"version"`
	Environment string     `json:"environment"`
	Uptime      string     `json:"uptime"`
	Timestamp   time.Time  `json:"timestamp"`
	System      SystemInfo `json:"system"`
}

// ReadinessStatus is the readiness payload
type ReadinessStatus struct {
	Ready    bool                   `json:"ready"`
	Services map[string]ServiceInfo `json:"services"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion      string `json:"go_version"`
	NumGoroutines  int    `json:"num_goroutines"`
	NumCPU         int    `json:"num_cpu"`
	MemoryAllocMB  uint64 `json:"memory_alloc_mb"`
	MemorySysMB    uint64 `json:"memory_sys_mb"`
	GCPauseTotalMs uint64 `json:"gc_pause_total_ms"`
	NumGC          uint32 `json:"num_gc"`
}

// Health handles the /health endpoint. It never touches dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.write(r.Context(), w, http.StatusOK, HealthStatus{
		Status:      "healthy",
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		System:      h.getSystemInfo(),
	})
}

// Readiness handles the /ready endpoint. Only the database gates readiness;
// the cache is bypassed when down and the queue only serves exports.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := ReadinessStatus{
		Ready:    true,
		Services: make(map[string]ServiceInfo),
	}

	dbInfo := h.checkDatabase(ctx)
	status.Services["database"] = dbInfo
	if dbInfo.Status != "healthy" {
		status.Ready = false
	}

	if h.cache != nil {
		status.Services["cache"] = h.checkCache(ctx)
	}
	if h.asynq != nil {
		status.Services["asynq"] = h.checkAsynq(ctx)
	}

	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	h.write(ctx, w, code, status)
}

func (h *HealthHandler) write(ctx context.Context, w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode health response",
			slog.String("error", err.Error()))
	}
}

// checkDatabase checks the health of the database connection
func (h *HealthHandler) checkDatabase(ctx context.Context) ServiceInfo {
	start := time.Now()
	info := ServiceInfo{Status: "healthy"}

	if err := h.db.Ping(ctx); err != nil {
		info.Status = "unhealthy"
		info.Message = err.Error()
		h.logger.ErrorContext(ctx, "database health check failed",
			slog.String("error", err.Error()))
		return info
	}

	info.Details = h.db.Health(ctx)
	info.ResponseTime = time.Since(start).String()
	return info
}

// checkCache checks the read cache
func (h *HealthHandler) checkCache(ctx context.Context) ServiceInfo {
	start := time.Now()
	info := ServiceInfo{Status: "healthy", Details: make(map[string]interface{})}

	if err := h.cache.Ping(ctx); err != nil {
		info.Status = "degraded"
		info.Message = err.Error()
		h.logger.WarnContext(ctx, "cache health check failed",
			slog.String("error", err.Error()))
		return info
	}

	if sr, ok := h.cache.(cacheStatsReporter); ok {
		stats := sr.Stats()
		info.Details["hits"] = stats.Hits
		info.Details["misses"] = stats.Misses
		info.Details["hit_rate"] = stats.HitRate
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

// checkAsynq checks the export queue
func (h *HealthHandler) checkAsynq(ctx context.Context) ServiceInfo {
	start := time.Now()
	info := ServiceInfo{Status: "healthy", Details: make(map[string]interface{})}

	queues, err := h.asynq.Queues()
	if err != nil {
		info.Status = "degraded"
		info.Message = err.Error()
		h.logger.WarnContext(ctx, "asynq health check failed",
			slog.String("error", err.Error()))
		return info
	}

	queueStats := make(map[string]interface{}, len(queues))
	for _, queue := range queues {
		qInfo, err := h.asynq.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		queueStats[queue] = map[string]interface{}{
			"size":      qInfo.Size,
			"active":    qInfo.Active,
			"pending":   qInfo.Pending,
			"retry":     qInfo.Retry,
			"archived":  qInfo.Archived,
			"completed": qInfo.Completed,
		}
	}
	info.Details["queues"] = queueStats

	info.ResponseTime = time.Since(start).String()
	return info
}

// getSystemInfo returns system-level information
func (h *HealthHandler) getSystemInfo() SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemInfo{
		GoVersion:      runtime.Version(),
		NumGoroutines:  runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		MemoryAllocMB:  memStats.Alloc / 1024 / 1024,
		MemorySysMB:    memStats.Sys / 1024 / 1024,
		GCPauseTotalMs: memStats.PauseTotalNs / 1000 / 1000,
		NumGC:          memStats.NumGC,
	}
}
