package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/mail"
)

type provisioningStore interface {
	schoolReader
	AddSchool(ctx context.Context, school models.SchoolData) error
	AddAccount(ctx context.Context, schoolID string, account models.Account) (*models.Account, error)
	UpdateProfile(ctx context.Context, schoolID string, profile models.SchoolProfile) error
}

// ProvisionSchoolRequest creates a new tenant with its first admin.
type ProvisionSchoolRequest struct {
	SchoolID      string               `json:"school_id" validate:"required"`
	Name          string               `json:"name" validate:"required"`
	Address       string               `json:"address"`
	ContactEmail  string               `json:"contact_email" validate:"required,email"`
	Tier          models.SchoolTier    `json:"tier" validate:"required,oneof=Starter Pro Premium"`
	Currency      string               `json:"currency" validate:"required"`
	GradingSystem models.GradingSystem `json:"grading_system" validate:"required,oneof=20-Point Letter GPA"`
	MonthlyAmount float64              `json:"monthly_amount" validate:"gte=0"`
	AdminName     string               `json:"admin_name" validate:"required"`
	AdminEmail    string               `json:"admin_email" validate:"required,email"`
	AdminPassword string               `json:"admin_password" validate:"required,min=8"`
}

// ProvisioningService creates tenants, bootstraps their first admin and
// sends the welcome email.
type ProvisioningService struct {
	store     provisioningStore
	sender    mail.Sender
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewProvisioningService(store provisioningStore, sender mail.Sender, validate *validator.Validate, logger *zap.Logger) *ProvisioningService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = mail.NewConsoleSender(logger)
	}
	return &ProvisioningService{store: store, sender: sender, validator: validate, logger: logger, now: time.Now}
}

// ProvisionSchool creates the tenant document with empty collections,
// bootstraps the admin account and fires the welcome email. The email is
// fire-and-forget: delivery failure never fails provisioning.
func (s *ProvisioningService) ProvisionSchool(ctx context.Context, req ProvisionSchoolRequest) (*models.SchoolData, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid provisioning payload")
	}
	schoolID := normalizeSchoolID(req.SchoolID)
	if _, err := s.store.Snapshot(schoolID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "school already exists")
	}

	school := models.SchoolData{
		ID: schoolID,
		Profile: models.SchoolProfile{
			Name:          req.Name,
			Address:       req.Address,
			ContactEmail:  req.ContactEmail,
			Tier:          req.Tier,
			Currency:      req.Currency,
			GradingSystem: req.GradingSystem,
			Subscription: models.Subscription{
				MonthlyAmount: req.MonthlyAmount,
				Status:        models.SubscriptionPaid,
			},
		},
		Students:     []models.Student{},
		Teachers:     []models.Teacher{},
		Classes:      []models.Class{},
		Courses:      []models.Course{},
		Grades:       []models.Grade{},
		Attendance:   []models.AttendanceRecord{},
		Fees:         []models.FinanceRecord{},
		Expenses:     []models.Expense{},
		Admissions:   []models.Admission{},
		Teams:        []models.Team{},
		Competitions: []models.Competition{},
		Messages:     []models.Message{},
		Activity:     []models.ActivityLog{},
	}
	if err := s.store.AddSchool(ctx, school); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "hashing admin password")
	}
	if _, err := s.store.AddAccount(ctx, schoolID, models.Account{
		FullName:     req.AdminName,
		Email:        strings.ToLower(req.AdminEmail),
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}); err != nil {
		return nil, err
	}

	go s.sendWelcome(req, schoolID)

	return &school, nil
}

func (s *ProvisioningService) sendWelcome(req ProvisionSchoolRequest, schoolID string) {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your school <strong>%s</strong> is ready on Scolara. Sign in with %s to get started.</p>",
		req.AdminName, req.Name, req.AdminEmail,
	)
	if err := s.sender.Send(req.AdminName, req.AdminEmail, "Welcome to Scolara", body); err != nil {
		s.logger.Warn("welcome email failed",
			zap.String("school_id", schoolID),
			zap.String("to", req.AdminEmail),
			zap.Error(err))
	}
}

// UpdateSubscription records the stored billing state for a tenant.
func (s *ProvisioningService) UpdateSubscription(ctx context.Context, schoolID string, sub models.Subscription) error {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return err
	}
	profile := school.Profile
	profile.Subscription = sub
	return s.store.UpdateProfile(ctx, schoolID, profile)
}

// normalizeSchoolID lowercases and dashes the identifier so URLs stay
// predictable.
func normalizeSchoolID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	return strings.ReplaceAll(id, " ", "-")
}
