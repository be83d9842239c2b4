package dto

import (
	"time"

	"github.com/scolara/scolara-api/internal/models"
)

// SchoolOverview is the cached per-tenant dashboard payload.
type SchoolOverview struct {
	SchoolID          string                   `json:"school_id"`
	Name              string                   `json:"name"`
	Tier              models.SchoolTier        `json:"tier"`
	StudentCount      int                      `json:"student_count"`
	ActiveStudents    int                      `json:"active_students"`
	TeacherCount      int                      `json:"teacher_count"`
	ClassCount        int                      `json:"class_count"`
	PendingAdmissions int                      `json:"pending_admissions"`
	UnreadMessages    int                      `json:"unread_messages"`
	Finance           models.FinanceTotals     `json:"finance"`
	LedgerNet         float64                  `json:"ledger_net"`
	Attendance        models.AttendanceSummary `json:"attendance"`
	RecentActivity    []models.ActivityLog     `json:"recent_activity"`
	GeneratedAt       time.Time                `json:"generated_at"`
}
