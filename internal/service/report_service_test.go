package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/store"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/jobs"
	"github.com/scolara/scolara-api/pkg/storage"
)

// inlineQueue runs jobs synchronously so tests stay deterministic.
type inlineQueue struct {
	handler jobs.Handler
}

func (q *inlineQueue) Enqueue(job jobs.Job) error {
	return q.handler(context.Background(), job)
}

func newReportFixture(t *testing.T) *ReportService {
	t.Helper()
	remote := &fakeRemote{schools: []models.SchoolData{{
		ID: "northwood-high",
		Profile: models.SchoolProfile{
			Name:          "Northwood High",
			Currency:      "USD",
			GradingSystem: models.GradingLetter,
		},
		Students: []models.Student{
			{ID: "stu-1", FullName: "Ama Mensah", GradeLevel: "Grade 10", Status: models.StatusActive},
		},
		Grades: []models.Grade{
			{ID: "grd-1", StudentID: "stu-1", Subject: "Mathematics", Score: "17", Type: "Exam"},
		},
		Fees: []models.FinanceRecord{
			{ID: "fee-1", StudentID: "stu-1", Description: "Tuition", TotalAmount: 1000, AmountPaid: 400, DueDate: time.Now().Add(48 * time.Hour)},
		},
	}}}
	st := store.New(remote, nil)
	require.NoError(t, st.Load(context.Background(), nil))

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	svc := NewReportService(
		NewAcademicsService(st, nil, nil),
		NewFinanceService(st, nil, nil),
		local, signer, nil, nil,
	)
	queue := &inlineQueue{handler: svc.Process}
	svc.SetQueue(queue)
	return svc
}

func TestReportCardJobCompletesWithDownload(t *testing.T) {
	svc := newReportFixture(t)

	resp, err := svc.CreateJob(context.Background(), "northwood-high", dto.ReportRequest{
		Type:      models.ReportStudentCard,
		StudentID: "stu-1",
	}, "usr-admin")
	require.NoError(t, err)

	status, err := svc.GetStatus(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusCompleted, status.Status)
	assert.Equal(t, 100, status.Progress)
	require.NotEmpty(t, status.DownloadURL)

	token := strings.TrimPrefix(status.DownloadURL, "/api/v1/reports/download/")
	download, err := svc.Download(token)
	require.NoError(t, err)
	defer download.File.Close()

	assert.Equal(t, models.ReportFormatPDF, download.Format)
	info, err := download.File.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFinanceCSVJob(t *testing.T) {
	svc := newReportFixture(t)

	resp, err := svc.CreateJob(context.Background(), "northwood-high", dto.ReportRequest{
		Type: models.ReportFinanceCSV,
	}, "usr-admin")
	require.NoError(t, err)

	status, err := svc.GetStatus(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusCompleted, status.Status)

	token := strings.TrimPrefix(status.DownloadURL, "/api/v1/reports/download/")
	download, err := svc.Download(token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, models.ReportFormatCSV, download.Format)
}

func TestReportCardRequiresStudent(t *testing.T) {
	svc := newReportFixture(t)

	_, err := svc.CreateJob(context.Background(), "northwood-high", dto.ReportRequest{
		Type: models.ReportStudentCard,
	}, "usr-admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportJobFailureIsRecorded(t *testing.T) {
	svc := newReportFixture(t)

	resp, err := svc.CreateJob(context.Background(), "northwood-high", dto.ReportRequest{
		Type:      models.ReportStudentCard,
		StudentID: "stu-404",
	}, "usr-admin")
	// the inline queue surfaces the processing error through Enqueue
	require.Error(t, err)
	assert.Nil(t, resp)

	// a job created with a bad student fails but stays queryable
	jobsSeen := false
	for id := range svc.jobs {
		jobsSeen = true
		status, err := svc.GetStatus(id)
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusFailed, status.Status)
		assert.NotEmpty(t, status.Error)
	}
	assert.True(t, jobsSeen)
}

func TestDownloadRejectsTamperedToken(t *testing.T) {
	svc := newReportFixture(t)

	resp, err := svc.CreateJob(context.Background(), "northwood-high", dto.ReportRequest{
		Type: models.ReportFinanceCSV,
	}, "usr-admin")
	require.NoError(t, err)

	status, err := svc.GetStatus(resp.ID)
	require.NoError(t, err)
	token := strings.TrimPrefix(status.DownloadURL, "/api/v1/reports/download/")

	_, err = svc.Download(token + "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
