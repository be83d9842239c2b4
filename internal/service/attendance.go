package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
)

// SummarizeAttendance tallies records into the four recognised buckets.
// Status matching is case-insensitive; anything outside the closed set is
// ignored rather than guessed at.
func SummarizeAttendance(records []models.AttendanceRecord) models.AttendanceSummary {
	var summary models.AttendanceSummary
	for _, rec := range records {
		switch strings.ToLower(string(rec.Status)) {
		case "present":
			summary.Present++
		case "late":
			summary.Late++
		case "absent":
			summary.Absent++
		case "sick":
			summary.Sick++
		}
	}
	return summary
}

type attendanceStore interface {
	schoolReader
	RecordAttendance(ctx context.Context, schoolID, courseID, date string, records []models.AttendanceRecord) error
}

// AttendanceService records and summarises attendance per school.
type AttendanceService struct {
	store  attendanceStore
	logger *zap.Logger
}

func NewAttendanceService(store attendanceStore, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, logger: logger}
}

// Record replaces the attendance set for one course on one date.
func (s *AttendanceService) Record(ctx context.Context, schoolID, courseID, date string, records []models.AttendanceRecord) error {
	return s.store.RecordAttendance(ctx, schoolID, courseID, date, records)
}

// List returns raw attendance records, optionally filtered by student
// and/or course.
func (s *AttendanceService) List(schoolID, studentID, courseID string) ([]models.AttendanceRecord, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	out := make([]models.AttendanceRecord, 0, len(school.Attendance))
	for _, rec := range school.Attendance {
		if studentID != "" && rec.StudentID != studentID {
			continue
		}
		if courseID != "" && rec.CourseID != courseID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// StudentSummary tallies one student's attendance across all courses.
func (s *AttendanceService) StudentSummary(schoolID, studentID string) (*dto.AttendanceSummaryResponse, error) {
	records, err := s.List(schoolID, studentID, "")
	if err != nil {
		return nil, err
	}
	summary := SummarizeAttendance(records)
	return &dto.AttendanceSummaryResponse{
		SchoolID:  schoolID,
		StudentID: studentID,
		Summary:   summary,
		Total:     summary.Total(),
	}, nil
}

// SchoolSummary tallies attendance across the whole school.
func (s *AttendanceService) SchoolSummary(schoolID string) (*dto.AttendanceSummaryResponse, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeAttendance(school.Attendance)
	return &dto.AttendanceSummaryResponse{
		SchoolID: schoolID,
		Summary:  summary,
		Total:    summary.Total(),
	}, nil
}
