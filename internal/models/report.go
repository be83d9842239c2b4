package models

import "time"

// ReportType selects what a background export renders.
type ReportType string

const (
	ReportStudentCard ReportType = "student_report_card"
	ReportFinanceCSV  ReportType = "finance_csv"
)

// ReportFormat is the artifact encoding.
type ReportFormat string

const (
	ReportFormatPDF ReportFormat = "pdf"
	ReportFormatCSV ReportFormat = "csv"
)

// ReportStatus tracks a job through the queue.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "queued"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// ReportJob is one export request and its lifecycle state. Jobs are
// ephemeral: they live in memory, the artifact on local disk behind a
// signed URL.
type ReportJob struct {
	ID          string       `json:"id"`
	SchoolID    string       `json:"school_id"`
	Type        ReportType   `json:"type"`
	Format      ReportFormat `json:"format"`
	StudentID   string       `json:"student_id,omitempty"`
	Status      ReportStatus `json:"status"`
	Progress    int          `json:"progress"`
	Filename    string       `json:"filename,omitempty"`
	DownloadURL string       `json:"download_url,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
}
