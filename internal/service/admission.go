package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type admissionStore interface {
	schoolReader
	AddAdmission(ctx context.Context, schoolID string, admission models.Admission) (*models.Admission, error)
	UpdateAdmission(ctx context.Context, schoolID string, admission models.Admission) (*models.Admission, error)
	AddStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error)
}

// admissionTransitions encodes the legal state machine. Approved and
// Rejected have no outgoing edges.
var admissionTransitions = map[models.AdmissionStatus][]models.AdmissionStatus{
	models.AdmissionPending:    {models.AdmissionApproved, models.AdmissionRejected, models.AdmissionWaitlisted},
	models.AdmissionWaitlisted: {models.AdmissionApproved, models.AdmissionRejected},
}

// CanTransition reports whether an admission may move between the two states.
func CanTransition(from, to models.AdmissionStatus) bool {
	for _, allowed := range admissionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseAppliedFor splits an "applied for" value like "Grade 10-A" into the
// grade level ("Grade 10") and section suffix ("A"). Values without a
// section dash come back whole with an empty section.
func ParseAppliedFor(appliedFor string) (gradeLevel, section string) {
	appliedFor = strings.TrimSpace(appliedFor)
	idx := strings.LastIndex(appliedFor, "-")
	if idx < 0 {
		return appliedFor, ""
	}
	return strings.TrimSpace(appliedFor[:idx]), strings.TrimSpace(appliedFor[idx+1:])
}

// AdmissionService runs applications through their state machine and
// enrolls approved applicants.
type AdmissionService struct {
	store  admissionStore
	logger *zap.Logger
	now    func() time.Time
}

func NewAdmissionService(store admissionStore, logger *zap.Logger) *AdmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{store: store, logger: logger, now: time.Now}
}

// Submit files a new application. Incoming status is ignored; every
// application starts Pending.
func (s *AdmissionService) Submit(ctx context.Context, schoolID string, admission models.Admission) (*models.Admission, error) {
	return s.store.AddAdmission(ctx, schoolID, admission)
}

// List returns applications, optionally filtered by status.
func (s *AdmissionService) List(schoolID string, status models.AdmissionStatus) ([]models.Admission, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Admission, 0, len(school.Admissions))
	for _, adm := range school.Admissions {
		if status != "" && adm.Status != status {
			continue
		}
		out = append(out, adm)
	}
	return out, nil
}

// Decide moves an application to a new state. An approval also creates the
// student record; the admission keeps its prior status if enrollment fails,
// so the decision can be retried. A retry skips enrollment when the
// applicant already has a student record from the earlier attempt.
func (s *AdmissionService) Decide(ctx context.Context, schoolID, admissionID string, to models.AdmissionStatus) (*models.Admission, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	var current *models.Admission
	for i := range school.Admissions {
		if school.Admissions[i].ID == admissionID {
			current = &school.Admissions[i]
			break
		}
	}
	if current == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "admission not found")
	}
	if !CanTransition(current.Status, to) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "admission cannot move from "+string(current.Status)+" to "+string(to))
	}

	if to == models.AdmissionApproved {
		if err := s.enroll(ctx, schoolID, *current); err != nil {
			return nil, err
		}
	}

	decidedAt := s.now().UTC()
	updated := *current
	updated.Status = to
	updated.DecidedAt = &decidedAt
	return s.store.UpdateAdmission(ctx, schoolID, updated)
}

func (s *AdmissionService) enroll(ctx context.Context, schoolID string, admission models.Admission) error {
	if s.alreadyEnrolled(schoolID, admission) {
		s.logger.Info("applicant already enrolled, skipping student creation",
			zap.String("school_id", schoolID),
			zap.String("admission_id", admission.ID))
		return nil
	}
	gradeLevel, section := ParseAppliedFor(admission.AppliedFor)
	student := models.Student{
		FullName:    admission.FullName,
		BirthDate:   admission.BirthDate,
		Sex:         admission.Sex,
		Phone:       admission.Phone,
		GradeLevel:  gradeLevel,
		ClassID:     s.matchClass(schoolID, admission.AppliedFor, section),
		ParentName:  admission.ParentName,
		ParentEmail: admission.ParentEmail,
		Status:      models.StatusActive,
	}
	_, err := s.store.AddStudent(ctx, schoolID, student)
	return err
}

// alreadyEnrolled reports whether a prior approval attempt created the
// applicant's student record before the status write failed.
func (s *AdmissionService) alreadyEnrolled(schoolID string, admission models.Admission) bool {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return false
	}
	for _, stu := range school.Students {
		if strings.EqualFold(stu.FullName, admission.FullName) &&
			strings.EqualFold(stu.ParentEmail, admission.ParentEmail) &&
			stu.BirthDate.Equal(admission.BirthDate) {
			return true
		}
	}
	return false
}

// matchClass resolves the applied-for value to an existing class by name.
// No match leaves the student unassigned for manual placement.
func (s *AdmissionService) matchClass(schoolID, appliedFor, section string) string {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return ""
	}
	for _, cls := range school.Classes {
		if strings.EqualFold(cls.Name, appliedFor) {
			return cls.ID
		}
	}
	if section != "" {
		for _, cls := range school.Classes {
			if strings.HasSuffix(strings.ToUpper(cls.Name), "-"+strings.ToUpper(section)) {
				return cls.ID
			}
		}
	}
	return ""
}
