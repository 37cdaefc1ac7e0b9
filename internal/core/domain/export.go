package domain

import "time"

// ExportState mirrors the lifecycle of a background export job.
type ExportState string

const (
	ExportPending   ExportState = "pending"
	ExportRunning   ExportState = "running"
	ExportCompleted ExportState = "completed"
	ExportFailed    ExportState = "failed"
)

// ExportRequest is the payload of an asynchronous export job.
type ExportRequest struct {
	JobID       string    `json:"job_id"`
	RequestedAt time.Time `json:"requested_at"`
	RequestedBy string    `json:"requested_by,omitempty"`
}

// ExportResult is written by the worker once the workbook is uploaded.
type ExportResult struct {
	ObjectKey    string    `json:"object_key"`
	Location     string    `json:"location"`
	DownloadURL  string    `json:"download_url,omitempty"`
	InvoiceCount int       `json:"invoice_count"`
	BatchCount   int       `json:"batch_count"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ExportJob describes an export job as seen by API clients.
type ExportJob struct {
	TaskID    string        `json:"task_id"`
	JobID     string        `json:"job_id,omitempty"`
	Queue     string        `json:"queue"`
	State     ExportState   `json:"state"`
	LastError string        `json:"last_error,omitempty"`
	Result    *ExportResult `json:"result,omitempty"`
}
