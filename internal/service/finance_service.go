package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type schoolReader interface {
	Snapshot(schoolID string) (*models.SchoolData, error)
}

type financeStore interface {
	schoolReader
	AddFee(ctx context.Context, schoolID string, fee models.FinanceRecord) (*models.FinanceRecord, error)
	RecordPayment(ctx context.Context, schoolID, feeID string, amount float64) (*models.FinanceRecord, error)
	AddExpense(ctx context.Context, schoolID string, expense models.Expense) (*models.Expense, error)
}

// CreateFeeRequest holds payload for charging a fee.
type CreateFeeRequest struct {
	StudentID   string    `json:"student_id" validate:"required"`
	Description string    `json:"description" validate:"required"`
	TotalAmount float64   `json:"total_amount" validate:"gt=0"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// RecordPaymentRequest holds payload for a payment against a fee.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// CreateExpenseRequest holds payload for a ledger line.
type CreateExpenseRequest struct {
	Type        models.ExpenseType `json:"type" validate:"required,oneof=Income Expense"`
	Description string             `json:"description" validate:"required"`
	Category    string             `json:"category"`
	Amount      float64            `json:"amount" validate:"gt=0"`
	Date        time.Time          `json:"date"`
	ProofRef    string             `json:"proof_ref"`
}

// FinanceService derives fee status and money aggregates for one school.
// Every call site goes through the same pure derivations so the status
// logic cannot drift apart.
type FinanceService struct {
	store     financeStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFinanceService constructs the finance service.
func NewFinanceService(store financeStore, validate *validator.Validate, logger *zap.Logger) *FinanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceService{store: store, validator: validate, logger: logger, now: time.Now}
}

// ListFees returns fee views, optionally filtered to one student.
func (s *FinanceService) ListFees(schoolID, studentID string) ([]dto.FeeView, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	views := make([]dto.FeeView, 0, len(school.Fees))
	for _, fee := range school.Fees {
		if studentID != "" && fee.StudentID != studentID {
			continue
		}
		views = append(views, dto.FeeView{
			FinanceRecord: fee,
			Balance:       FeeBalance(fee),
			Status:        FeeStatus(fee, now),
		})
	}
	return views, nil
}

// ChargeFee records a new fee for a student.
func (s *FinanceService) ChargeFee(ctx context.Context, schoolID string, req CreateFeeRequest) (*dto.FeeView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}
	fee, err := s.store.AddFee(ctx, schoolID, models.FinanceRecord{
		StudentID:   req.StudentID,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return &dto.FeeView{FinanceRecord: *fee, Balance: FeeBalance(*fee), Status: FeeStatus(*fee, now)}, nil
}

// RecordPayment applies a payment and returns the fee with re-derived status.
func (s *FinanceService) RecordPayment(ctx context.Context, schoolID, feeID string, req RecordPaymentRequest) (*dto.FeeView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	fee, err := s.store.RecordPayment(ctx, schoolID, feeID, req.Amount)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return &dto.FeeView{FinanceRecord: *fee, Balance: FeeBalance(*fee), Status: FeeStatus(*fee, now)}, nil
}

// AddLedgerEntry records an income or expense line.
func (s *FinanceService) AddLedgerEntry(ctx context.Context, schoolID string, req CreateExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ledger payload")
	}
	return s.store.AddExpense(ctx, schoolID, models.Expense{
		Type:        req.Type,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		ProofRef:    req.ProofRef,
	})
}

// Summary folds fees and the ledger into one school-wide money position.
func (s *FinanceService) Summary(schoolID string) (*dto.FinanceSummaryResponse, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	totals := SumFinanceTotals(school.Fees, now)
	ledgerNet := LedgerNet(school.Expenses)
	return &dto.FinanceSummaryResponse{
		SchoolID:  schoolID,
		Currency:  school.Profile.Currency,
		Totals:    totals,
		LedgerNet: ledgerNet,
		Net:       totals.Revenue + ledgerNet,
	}, nil
}
