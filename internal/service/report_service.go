package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/export"
	"github.com/scolara/scolara-api/pkg/jobs"
	"github.com/scolara/scolara-api/pkg/storage"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ReportDownload is a resolved signed-URL download.
type ReportDownload struct {
	File     *os.File
	Filename string
	Format   models.ReportFormat
}

// ReportService generates report-card PDFs and finance CSVs on the
// background queue. Jobs live in memory; artifacts live on disk behind
// signed URLs.
type ReportService struct {
	academics *AcademicsService
	finance   *FinanceService
	queue     jobDispatcher
	pdf       *export.PDFExporter
	csv       *export.CSVExporter
	storage   *storage.LocalStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	mu   sync.RWMutex
	jobs map[string]*models.ReportJob
}

// NewReportService constructs the report service. Call Process as the
// queue handler.
func NewReportService(academics *AcademicsService, finance *FinanceService, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		academics: academics,
		finance:   finance,
		pdf:       export.NewPDFExporter(),
		csv:       export.NewCSVExporter(),
		storage:   store,
		signer:    signer,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		jobs:      make(map[string]*models.ReportJob),
	}
}

// SetQueue wires the dispatcher after construction; the queue handler
// needs the service and the service needs the queue.
func (s *ReportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob validates the request, registers the job and enqueues it.
func (s *ReportService) CreateJob(ctx context.Context, schoolID string, req dto.ReportRequest, createdBy string) (*dto.ReportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}
	if req.Type == models.ReportStudentCard && req.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_id required for report cards")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report queue not running")
	}

	job := &models.ReportJob{
		ID:        newReportID(),
		SchoolID:  schoolID,
		Type:      req.Type,
		Format:    formatFor(req.Type),
		StudentID: req.StudentID,
		Status:    models.ReportStatusQueued,
		CreatedBy: createdBy,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
		s.fail(job.ID, "enqueue failed: "+err.Error())
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueueing report job")
	}
	return s.response(job.ID), nil
}

// GetStatus returns the job state; creators only see their own jobs
// unless they hold an admin role (enforced at the handler).
func (s *ReportService) GetStatus(jobID string) (*dto.ReportJobResponse, error) {
	resp := s.response(jobID)
	if resp == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return resp, nil
}

// Process is the queue handler: it renders the artifact and publishes the
// signed download URL.
func (s *ReportService) Process(ctx context.Context, job jobs.Job) error {
	record := s.get(job.ID)
	if record == nil {
		return fmt.Errorf("unknown report job %s", job.ID)
	}
	s.update(job.ID, func(j *models.ReportJob) {
		j.Status = models.ReportStatusProcessing
		j.Progress = 10
	})

	var (
		data     []byte
		filename string
		err      error
	)
	switch record.Type {
	case models.ReportStudentCard:
		data, filename, err = s.renderReportCard(record)
	case models.ReportFinanceCSV:
		data, filename, err = s.renderFinanceCSV(record)
	default:
		err = fmt.Errorf("unknown report type %q", record.Type)
	}
	if err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	if _, err := s.storage.Save(filename, data); err != nil {
		s.fail(job.ID, "saving artifact: "+err.Error())
		return err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, filename)
	if err != nil {
		s.fail(job.ID, "signing download: "+err.Error())
		return err
	}

	finished := s.now().UTC()
	s.update(job.ID, func(j *models.ReportJob) {
		j.Status = models.ReportStatusCompleted
		j.Progress = 100
		j.Filename = filename
		j.DownloadURL = "/api/v1/reports/download/" + token
		j.ExpiresAt = &expiresAt
		j.FinishedAt = &finished
	})
	s.logger.Info("report generated",
		zap.String("job_id", job.ID),
		zap.String("type", string(record.Type)),
		zap.String("file", filename))
	return nil
}

// Download resolves a signed token to the artifact on disk.
func (s *ReportService) Download(token string) (*ReportDownload, error) {
	jobID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}
	record := s.get(jobID)
	if record == nil || record.Status != models.ReportStatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report not available")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "report artifact missing")
	}
	return &ReportDownload{File: file, Filename: record.Filename, Format: record.Format}, nil
}

func (s *ReportService) renderReportCard(job *models.ReportJob) ([]byte, string, error) {
	card, err := s.academics.ReportCard(job.SchoolID, job.StudentID)
	if err != nil {
		return nil, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Subject", "Type", "Score", "Grade"},
	}
	for _, g := range card.Grades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Subject": g.Subject,
			"Type":    g.Type,
			"Score":   g.Score,
			"Grade":   g.Display,
		})
	}
	dataset.Rows = append(dataset.Rows, map[string]string{
		"Subject": "Overall average",
		"Grade":   card.AverageText,
	})
	title := "Report Card - " + card.StudentName
	data, err := s.pdf.Render(dataset, title, card.SchoolName)
	if err != nil {
		return nil, "", err
	}
	return data, job.ID + "_report_card.pdf", nil
}

func (s *ReportService) renderFinanceCSV(job *models.ReportJob) ([]byte, string, error) {
	fees, err := s.finance.ListFees(job.SchoolID, "")
	if err != nil {
		return nil, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Fee ID", "Student ID", "Description", "Total", "Paid", "Balance", "Status", "Due"},
	}
	for _, fee := range fees {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Fee ID":      fee.ID,
			"Student ID":  fee.StudentID,
			"Description": fee.Description,
			"Total":       strconv.FormatFloat(fee.TotalAmount, 'f', 2, 64),
			"Paid":        strconv.FormatFloat(fee.AmountPaid, 'f', 2, 64),
			"Balance":     strconv.FormatFloat(fee.Balance, 'f', 2, 64),
			"Status":      string(fee.Status),
			"Due":         fee.DueDate.Format("2006-01-02"),
		})
	}
	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", err
	}
	return data, job.ID + "_finance.csv", nil
}

func (s *ReportService) get(jobID string) *models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	clone := *job
	return &clone
}

func (s *ReportService) update(jobID string, fn func(*models.ReportJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		fn(job)
	}
}

func (s *ReportService) fail(jobID, msg string) {
	finished := s.now().UTC()
	s.update(jobID, func(j *models.ReportJob) {
		j.Status = models.ReportStatusFailed
		j.Progress = 100
		j.Error = msg
		j.FinishedAt = &finished
	})
}

func (s *ReportService) response(jobID string) *dto.ReportJobResponse {
	job := s.get(jobID)
	if job == nil {
		return nil
	}
	return &dto.ReportJobResponse{
		ID:          job.ID,
		Type:        job.Type,
		Status:      job.Status,
		Progress:    job.Progress,
		DownloadURL: job.DownloadURL,
		Error:       job.Error,
	}
}

func formatFor(t models.ReportType) models.ReportFormat {
	if t == models.ReportFinanceCSV {
		return models.ReportFormatCSV
	}
	return models.ReportFormatPDF
}

func newReportID() string {
	return "rpt-" + uuid.NewString()
}
