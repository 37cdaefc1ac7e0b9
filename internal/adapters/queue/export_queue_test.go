package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

type fakeClient struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	f.opts = opts

	info := &asynq.TaskInfo{Type: task.Type(), Payload: task.Payload(), State: asynq.TaskStatePending}
	for _, o := range opts {
		switch o.Type() {
		case asynq.TaskIDOpt:
			info.ID = o.Value().(string)
		case asynq.QueueOpt:
			info.Queue = o.Value().(string)
		}
	}
	return info, nil
}

type fakeInspector struct {
	info *asynq.TaskInfo
	err  error
}

func (f *fakeInspector) GetTaskInfo(_, _ string) (*asynq.TaskInfo, error) {
	return f.info, f.err
}

func newTestQueue(client Enqueuer, inspector TaskInspector) *ExportQueue {
	return NewExportQueue(client, inspector, Options{
		Queue:     "low",
		MaxRetry:  2,
		Timeout:   time.Minute,
		Retention: time.Hour,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExportQueue_EnqueueExport(t *testing.T) {
	client := &fakeClient{}
	q := newTestQueue(client, nil)

	req := domain.ExportRequest{JobID: "job-1", RequestedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	job, err := q.EnqueueExport(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.TaskID)
	assert.Equal(t, "job-1", job.JobID)
	assert.Equal(t, "low", job.Queue)
	assert.Equal(t, domain.ExportPending, job.State)

	assert.Equal(t, TypeExport, client.task.Type())
	parsed, err := ParseExportTask(client.task)
	require.NoError(t, err)
	assert.Equal(t, req.JobID, parsed.JobID)
	assert.True(t, req.RequestedAt.Equal(parsed.RequestedAt))

	types := make(map[asynq.OptionType]any, len(client.opts))
	for _, o := range client.opts {
		types[o.Type()] = o.Value()
	}
	assert.Equal(t, 2, types[asynq.MaxRetryOpt])
	assert.Equal(t, time.Minute, types[asynq.TimeoutOpt])
	assert.Equal(t, time.Hour, types[asynq.RetentionOpt])
}

func TestExportQueue_EnqueueExport_Error(t *testing.T) {
	q := newTestQueue(&fakeClient{err: errors.New("redis down")}, nil)

	_, err := q.EnqueueExport(context.Background(), domain.ExportRequest{JobID: "job-1"})
	assert.ErrorContains(t, err, "redis down")
}

func TestExportQueue_ExportStatus(t *testing.T) {
	payload, _ := json.Marshal(domain.ExportRequest{JobID: "job-1"})
	result, _ := json.Marshal(domain.ExportResult{ObjectKey: "exports/2024/01/job-1.xlsx", InvoiceCount: 3})

	tests := []struct {
		name       string
		info       *asynq.TaskInfo
		err        error
		wantErr    error
		wantState  domain.ExportState
		wantResult bool
	}{
		{
			name:      "pending",
			info:      &asynq.TaskInfo{ID: "job-1", Type: TypeExport, Payload: payload, State: asynq.TaskStatePending},
			wantState: domain.ExportPending,
		},
		{
			name:      "retrying_is_still_pending",
			info:      &asynq.TaskInfo{ID: "job-1", Type: TypeExport, Payload: payload, State: asynq.TaskStateRetry, LastErr: "s3 timeout"},
			wantState: domain.ExportPending,
		},
		{
			name:      "active",
			info:      &asynq.TaskInfo{ID: "job-1", Type: TypeExport, Payload: payload, State: asynq.TaskStateActive},
			wantState: domain.ExportRunning,
		},
		{
			name:       "completed_with_result",
			info:       &asynq.TaskInfo{ID: "job-1", Type: TypeExport, Payload: payload, State: asynq.TaskStateCompleted, Result: result},
			wantState:  domain.ExportCompleted,
			wantResult: true,
		},
		{
			name:      "archived",
			info:      &asynq.TaskInfo{ID: "job-1", Type: TypeExport, Payload: payload, State: asynq.TaskStateArchived, LastErr: "boom"},
			wantState: domain.ExportFailed,
		},
		{
			name:    "unknown_task",
			err:     asynq.ErrTaskNotFound,
			wantErr: ports.ErrJobNotFound,
		},
		{
			name:    "other_task_type",
			info:    &asynq.TaskInfo{ID: "job-1", Type: "email:send"},
			wantErr: ports.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestQueue(nil, &fakeInspector{info: tt.info, err: tt.err})

			job, err := q.ExportStatus(context.Background(), "job-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, job.State)
			assert.Equal(t, "job-1", job.JobID)
			assert.Equal(t, tt.info.LastErr, job.LastError)
			if tt.wantResult {
				require.NotNil(t, job.Result)
				assert.Equal(t, 3, job.Result.InvoiceCount)
			} else {
				assert.Nil(t, job.Result)
			}
		})
	}
}

func TestParseExportTask_Invalid(t *testing.T) {
	_, err := ParseExportTask(asynq.NewTask(TypeExport, []byte("{")))
	assert.ErrorContains(t, err, "invalid export payload")

	_, err = ParseExportTask(asynq.NewTask(TypeExport, []byte(`{}`)))
	assert.ErrorContains(t, err, "job_id is required")
}
