package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type stubAttendanceStore struct {
	school   *models.SchoolData
	recorded []models.AttendanceRecord
}

func (s *stubAttendanceStore) Snapshot(schoolID string) (*models.SchoolData, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	clone := *s.school
	clone.Attendance = append([]models.AttendanceRecord(nil), s.school.Attendance...)
	return &clone, nil
}

func (s *stubAttendanceStore) RecordAttendance(_ context.Context, schoolID, courseID, date string, records []models.AttendanceRecord) error {
	if s.school == nil || s.school.ID != schoolID {
		return appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	s.recorded = records
	return nil
}

func TestSummarizeAttendanceBuckets(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendancePresent},
		{Status: models.AttendancePresent},
		{Status: "present"}, // case-insensitive
		{Status: models.AttendanceLate},
		{Status: models.AttendanceAbsent},
		{Status: models.AttendanceSick},
		{Status: "Excused"}, // outside the closed set, dropped
	}

	summary := SummarizeAttendance(records)

	assert.Equal(t, 3, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Sick)
	assert.Equal(t, 6, summary.Total())
}

func TestAttendanceStudentSummaryFiltersByStudent(t *testing.T) {
	store := &stubAttendanceStore{school: &models.SchoolData{
		ID: "northwood-high",
		Attendance: []models.AttendanceRecord{
			{StudentID: "stu-1", CourseID: "crs-1", Date: "2026-03-02", Status: models.AttendancePresent},
			{StudentID: "stu-1", CourseID: "crs-1", Date: "2026-03-03", Status: models.AttendanceLate},
			{StudentID: "stu-1", CourseID: "crs-2", Date: "2026-03-03", Status: models.AttendanceSick},
			{StudentID: "stu-2", CourseID: "crs-1", Date: "2026-03-02", Status: models.AttendanceAbsent},
		},
	}}
	svc := NewAttendanceService(store, nil)

	resp, err := svc.StudentSummary("northwood-high", "stu-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.Late)
	assert.Equal(t, 0, resp.Summary.Absent)
	assert.Equal(t, 1, resp.Summary.Sick)
	assert.Equal(t, 3, resp.Total)
}

func TestAttendanceListFilters(t *testing.T) {
	store := &stubAttendanceStore{school: &models.SchoolData{
		ID: "northwood-high",
		Attendance: []models.AttendanceRecord{
			{StudentID: "stu-1", CourseID: "crs-1", Status: models.AttendancePresent},
			{StudentID: "stu-2", CourseID: "crs-1", Status: models.AttendanceAbsent},
			{StudentID: "stu-1", CourseID: "crs-2", Status: models.AttendanceLate},
		},
	}}
	svc := NewAttendanceService(store, nil)

	byCourse, err := svc.List("northwood-high", "", "crs-1")
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	both, err := svc.List("northwood-high", "stu-1", "crs-2")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, models.AttendanceLate, both[0].Status)
}

func TestAttendanceRecordUnknownTenant(t *testing.T) {
	store := &stubAttendanceStore{school: &models.SchoolData{ID: "northwood-high"}}
	svc := NewAttendanceService(store, nil)

	err := svc.Record(context.Background(), "ghost-school", "crs-1", "2026-03-02", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTenantMissing.Code, appErrors.FromError(err).Code)
}
