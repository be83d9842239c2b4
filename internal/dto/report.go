package dto

import "github.com/scolara/scolara-api/internal/models"

// ReportRequest asks for a background export.
type ReportRequest struct {
	Type      models.ReportType `json:"type" validate:"required,oneof=student_report_card finance_csv"`
	StudentID string            `json:"student_id"`
}

// ReportJobResponse is the job state exposed to clients.
type ReportJobResponse struct {
	ID          string              `json:"id"`
	Type        models.ReportType   `json:"type"`
	Status      models.ReportStatus `json:"status"`
	Progress    int                 `json:"progress"`
	DownloadURL string              `json:"download_url,omitempty"`
	Error       string              `json:"error,omitempty"`
}
