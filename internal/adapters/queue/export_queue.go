// internal/adapters/queue/export_queue.go
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

// TypeExport is the asynq task type of spreadsheet exports.
const TypeExport = "invoice:export"

// Enqueuer is the subset of *asynq.Client used by ExportQueue.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is the subset of *asynq.Inspector used by ExportQueue.
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// Options controls how export tasks are enqueued.
type Options struct {
	Queue     string
	MaxRetry  int
	Timeout   time.Duration
	Retention time.Duration
}

// ExportQueue implements ports.ExportQueue on asynq.
type ExportQueue struct {
	client    Enqueuer
	inspector TaskInspector
	opts      Options
	logger    *slog.Logger
}

var _ ports.ExportQueue = (*ExportQueue)(nil)

// NewExportQueue creates an export queue
func NewExportQueue(client Enqueuer, inspector TaskInspector, opts Options, logger *slog.Logger) *ExportQueue {
	if opts.Queue == "" {
		opts.Queue = "default"
	}
	return &ExportQueue{
		client:    client,
		inspector: inspector,
		opts:      opts,
		logger:    logger.With(slog.String("component", "export_queue")),
	}
}

// NewExportTask builds the asynq task for req. The task id is the job id.
func NewExportTask(req domain.ExportRequest) (*asynq.Task, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeExport, payload), nil
}

// ParseExportTask decodes the payload of an export task.
func ParseExportTask(t *asynq.Task) (domain.ExportRequest, error) {
	var req domain.ExportRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return req, fmt.Errorf("invalid export payload: %w", err)
	}
	if req.JobID == "" {
		return req, errors.New("invalid export payload: job_id is required")
	}
	return req, nil
}

func (q *ExportQueue) EnqueueExport(ctx context.Context, req domain.ExportRequest) (*domain.ExportJob, error) {
	task, err := NewExportTask(req)
	if err != nil {
		return nil, err
	}

	opts := []asynq.Option{
		asynq.TaskID(req.JobID),
		asynq.Queue(q.opts.Queue),
		asynq.MaxRetry(q.opts.MaxRetry),
	}
	if q.opts.Timeout > 0 {
		opts = append(opts, asynq.Timeout(q.opts.Timeout))
	}
	if q.opts.Retention > 0 {
		opts = append(opts, asynq.Retention(q.opts.Retention))
	}

	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue export: %w", err)
	}

	q.logger.InfoContext(ctx, "export enqueued",
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))

	return jobFromInfo(info), nil
}

func (q *ExportQueue) ExportStatus(ctx context.Context, taskID string) (*domain.ExportJob, error) {
	info, err := q.inspector.GetTaskInfo(q.opts.Queue, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, ports.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to inspect export task: %w", err)
	}
	if info.Type != TypeExport {
		return nil, ports.ErrJobNotFound
	}

	return jobFromInfo(info), nil
}

func jobFromInfo(info *asynq.TaskInfo) *domain.ExportJob {
	job := &domain.ExportJob{
		TaskID:    info.ID,
		Queue:     info.Queue,
		State:     stateOf(info.State),
		LastError: info.LastErr,
	}

	var req domain.ExportRequest
	if err := json.Unmarshal(info.Payload, &req); err == nil {
		job.JobID = req.JobID
	}

	if len(info.Result) > 0 {
		var result domain.ExportResult
		if err := json.Unmarshal(info.Result, &result); err == nil {
			job.Result = &result
		}
	}
	return job
}

func stateOf(s asynq.TaskState) domain.ExportState {
	switch s {
	case asynq.TaskStateActive:
		return domain.ExportRunning
	case asynq.TaskStateCompleted:
		return domain.ExportCompleted
	case asynq.TaskStateArchived:
		return domain.ExportFailed
	default:
		// pending, scheduled, retry and aggregating are all still queued
		return domain.ExportPending
	}
}
