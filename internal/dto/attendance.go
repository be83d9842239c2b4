package dto

import "github.com/scolara/scolara-api/internal/models"

// RecordAttendanceRequest replaces attendance for one course on one date.
type RecordAttendanceRequest struct {
	CourseID string                 `json:"course_id" validate:"required"`
	Date     string                 `json:"date" validate:"required"`
	Records  []AttendanceEntryInput `json:"records" validate:"required,dive"`
}

// AttendanceEntryInput is one student's status inside a recording request.
type AttendanceEntryInput struct {
	StudentID string                  `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
}

// AttendanceSummaryResponse carries the four-bucket tally.
type AttendanceSummaryResponse struct {
	SchoolID  string                   `json:"school_id"`
	StudentID string                   `json:"student_id,omitempty"`
	Summary   models.AttendanceSummary `json:"summary"`
	Total     int                      `json:"total"`
}
