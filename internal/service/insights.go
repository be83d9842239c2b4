package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

// InsightsClient is the boundary to the AI collaborator. Implementations
// must be read-only: the collaborator never sees a write path.
type InsightsClient interface {
	Analyze(ctx context.Context, req dto.InsightsRequest) (*dto.StudentInsights, error)
}

// HTTPInsightsClient talks JSON to the collaborator endpoint.
type HTTPInsightsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPInsightsClient constructs the collaborator client.
func NewHTTPInsightsClient(baseURL, apiKey string, timeout time.Duration) *HTTPInsightsClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPInsightsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Analyze posts the student's signals and decodes the analysis. Every
// failure mode maps to the same unavailable error so callers degrade
// uniformly.
func (c *HTTPInsightsClient) Analyze(ctx context.Context, req dto.InsightsRequest) (*dto.StudentInsights, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status, "encoding insights request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status, "building insights request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status, "insights collaborator unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Wrap(
			fmt.Errorf("collaborator returned %d", resp.StatusCode),
			appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status,
			"insights collaborator error",
		)
	}
	var insights dto.StudentInsights
	if err := json.NewDecoder(resp.Body).Decode(&insights); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status, "decoding insights response")
	}
	return &insights, nil
}

// InsightsService assembles a student's signals and asks the collaborator
// for an analysis. It only reads from the store.
type InsightsService struct {
	store   schoolReader
	client  InsightsClient
	enabled bool
	logger  *zap.Logger
}

func NewInsightsService(store schoolReader, client InsightsClient, enabled bool, logger *zap.Logger) *InsightsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{store: store, client: client, enabled: enabled, logger: logger}
}

// StudentInsights gathers the student's grades and attendance tally and
// forwards them to the collaborator.
func (s *InsightsService) StudentInsights(ctx context.Context, schoolID, studentID string) (*dto.StudentInsights, error) {
	if !s.enabled || s.client == nil {
		return nil, appErrors.Clone(appErrors.ErrAIUnavailable, "insights are disabled")
	}
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	var student *models.Student
	for i := range school.Students {
		if school.Students[i].ID == studentID {
			student = &school.Students[i]
			break
		}
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	req := dto.InsightsRequest{
		StudentID:  student.ID,
		FullName:   student.FullName,
		GradeLevel: student.GradeLevel,
	}
	var records []models.AttendanceRecord
	for _, rec := range school.Attendance {
		if rec.StudentID == studentID {
			records = append(records, rec)
		}
	}
	req.Attendance = SummarizeAttendance(records)
	for _, g := range school.Grades {
		if g.StudentID != studentID {
			continue
		}
		req.Grades = append(req.Grades, dto.InsightGrade{
			Subject: g.Subject,
			Score:   ParseScore(g.Score),
			Type:    g.Type,
		})
	}

	insights, err := s.client.Analyze(ctx, req)
	if err != nil {
		s.logger.Warn("insights collaborator call failed",
			zap.String("school_id", schoolID),
			zap.String("student_id", studentID),
			zap.Error(err))
		return nil, err
	}
	return insights, nil
}
