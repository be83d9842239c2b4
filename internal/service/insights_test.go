package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type stubInsightsStore struct {
	school *models.SchoolData
}

func (s *stubInsightsStore) Snapshot(schoolID string) (*models.SchoolData, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	clone := *s.school
	return &clone, nil
}

func insightsFixture() *models.SchoolData {
	return &models.SchoolData{
		ID: "northwood-high",
		Students: []models.Student{
			{ID: "stu-1", FullName: "Ama Mensah", GradeLevel: "Grade 10"},
		},
		Grades: []models.Grade{
			{StudentID: "stu-1", Subject: "Mathematics", Score: "17", Type: "Exam"},
			{StudentID: "stu-1", Subject: "History", Score: "11", Type: "Quiz"},
			{StudentID: "stu-2", Subject: "Mathematics", Score: "8", Type: "Exam"},
		},
		Attendance: []models.AttendanceRecord{
			{StudentID: "stu-1", Status: models.AttendancePresent},
			{StudentID: "stu-1", Status: models.AttendanceLate},
			{StudentID: "stu-2", Status: models.AttendanceAbsent},
		},
	}
}

func TestInsightsServiceSendsSignalsAndDecodesAnalysis(t *testing.T) {
	var received dto.InsightsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/analyze", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(dto.StudentInsights{
			Summary:         "Strong quantitative profile.",
			Strengths:       []string{"Mathematics"},
			Areas:           []string{"History"},
			Recommendations: []string{"Add reading practice"},
		})
	}))
	defer server.Close()

	client := NewHTTPInsightsClient(server.URL, "test-key", 5*time.Second)
	svc := NewInsightsService(&stubInsightsStore{school: insightsFixture()}, client, true, nil)

	insights, err := svc.StudentInsights(context.Background(), "northwood-high", "stu-1")
	require.NoError(t, err)

	assert.Equal(t, "Strong quantitative profile.", insights.Summary)
	assert.Equal(t, []string{"Mathematics"}, insights.Strengths)

	// only stu-1's signals crossed the wire
	assert.Equal(t, "stu-1", received.StudentID)
	require.Len(t, received.Grades, 2)
	assert.InDelta(t, 17.0, received.Grades[0].Score, 0.001)
	assert.Equal(t, 1, received.Attendance.Present)
	assert.Equal(t, 1, received.Attendance.Late)
	assert.Equal(t, 0, received.Attendance.Absent)
}

func TestInsightsServiceCollaboratorErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPInsightsClient(server.URL, "", time.Second)
	svc := NewInsightsService(&stubInsightsStore{school: insightsFixture()}, client, true, nil)

	_, err := svc.StudentInsights(context.Background(), "northwood-high", "stu-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAIUnavailable.Code, appErrors.FromError(err).Code)
}

func TestInsightsServiceUnreachableCollaborator(t *testing.T) {
	client := NewHTTPInsightsClient("http://127.0.0.1:1", "", 200*time.Millisecond)
	svc := NewInsightsService(&stubInsightsStore{school: insightsFixture()}, client, true, nil)

	_, err := svc.StudentInsights(context.Background(), "northwood-high", "stu-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAIUnavailable.Code, appErrors.FromError(err).Code)
}

func TestInsightsServiceDisabled(t *testing.T) {
	svc := NewInsightsService(&stubInsightsStore{school: insightsFixture()}, nil, false, nil)

	_, err := svc.StudentInsights(context.Background(), "northwood-high", "stu-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAIUnavailable.Code, appErrors.FromError(err).Code)
}

func TestInsightsServiceUnknownStudent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.StudentInsights{})
	}))
	defer server.Close()

	client := NewHTTPInsightsClient(server.URL, "", time.Second)
	svc := NewInsightsService(&stubInsightsStore{school: insightsFixture()}, client, true, nil)

	_, err := svc.StudentInsights(context.Background(), "northwood-high", "stu-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
