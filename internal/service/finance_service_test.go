package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type stubFinanceStore struct {
	school *models.SchoolData
}

func (s *stubFinanceStore) Snapshot(schoolID string) (*models.SchoolData, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	clone := *s.school
	clone.Fees = append([]models.FinanceRecord(nil), s.school.Fees...)
	clone.Expenses = append([]models.Expense(nil), s.school.Expenses...)
	return &clone, nil
}

func (s *stubFinanceStore) AddFee(_ context.Context, schoolID string, fee models.FinanceRecord) (*models.FinanceRecord, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	fee.ID = "fee-new"
	s.school.Fees = append(s.school.Fees, fee)
	return &fee, nil
}

func (s *stubFinanceStore) RecordPayment(_ context.Context, schoolID, feeID string, amount float64) (*models.FinanceRecord, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	for i := range s.school.Fees {
		if s.school.Fees[i].ID == feeID {
			s.school.Fees[i].AmountPaid += amount
			fee := s.school.Fees[i]
			return &fee, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
}

func (s *stubFinanceStore) AddExpense(_ context.Context, schoolID string, expense models.Expense) (*models.Expense, error) {
	if s.school == nil || s.school.ID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	expense.ID = "exp-new"
	s.school.Expenses = append(s.school.Expenses, expense)
	return &expense, nil
}

func financeFixture(now time.Time) *models.SchoolData {
	return &models.SchoolData{
		ID: "northwood-high",
		Profile: models.SchoolProfile{
			Name:     "Northwood High",
			Currency: "USD",
		},
		Fees: []models.FinanceRecord{
			{
				ID:          "fee-1",
				StudentID:   "stu-1",
				Description: "Tuition Term 1",
				TotalAmount: 50000,
				AmountPaid:  25000,
				DueDate:     now.AddDate(0, 0, -1),
			},
			{
				ID:          "fee-2",
				StudentID:   "stu-2",
				Description: "Lab fee",
				TotalAmount: 1000,
				AmountPaid:  0,
				DueDate:     now.AddDate(0, 0, 30),
			},
		},
		Expenses: []models.Expense{
			{ID: "exp-1", Type: models.LedgerIncome, Description: "Hall rental", Amount: 3000},
			{ID: "exp-2", Type: models.LedgerExpense, Description: "Bus repair", Amount: 1200},
		},
	}
}

func TestFinanceServiceListFeesDerivesStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &stubFinanceStore{school: financeFixture(now)}
	svc := NewFinanceService(store, nil, nil)
	svc.now = func() time.Time { return now }

	views, err := svc.ListFees("northwood-high", "")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, models.FeeOverdue, views[0].Status)
	assert.InDelta(t, 25000.0, views[0].Balance, 0.001)
	assert.Equal(t, models.FeePending, views[1].Status)

	filtered, err := svc.ListFees("northwood-high", "stu-2")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "fee-2", filtered[0].ID)
}

func TestFinanceServicePaymentClearsOverdueFee(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &stubFinanceStore{school: financeFixture(now)}
	svc := NewFinanceService(store, nil, nil)
	svc.now = func() time.Time { return now }

	view, err := svc.RecordPayment(context.Background(), "northwood-high", "fee-1", RecordPaymentRequest{Amount: 25000})
	require.NoError(t, err)

	// settled in full, so the past due date no longer matters
	assert.Equal(t, models.FeePaid, view.Status)
	assert.InDelta(t, 0.0, view.Balance, 0.001)
}

func TestFinanceServiceRejectsNonPositivePayment(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &stubFinanceStore{school: financeFixture(now)}
	svc := NewFinanceService(store, nil, nil)

	_, err := svc.RecordPayment(context.Background(), "northwood-high", "fee-1", RecordPaymentRequest{Amount: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFinanceServiceSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &stubFinanceStore{school: financeFixture(now)}
	svc := NewFinanceService(store, nil, nil)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary("northwood-high")
	require.NoError(t, err)

	assert.Equal(t, "USD", summary.Currency)
	assert.InDelta(t, 25000.0, summary.Totals.Revenue, 0.001)
	assert.InDelta(t, 1000.0, summary.Totals.Pending, 0.001)
	assert.InDelta(t, 25000.0, summary.Totals.Overdue, 0.001)
	assert.InDelta(t, 1800.0, summary.LedgerNet, 0.001)
	assert.InDelta(t, 26800.0, summary.Net, 0.001)
}

func TestFinanceServiceUnknownTenant(t *testing.T) {
	store := &stubFinanceStore{school: financeFixture(time.Now())}
	svc := NewFinanceService(store, nil, nil)

	_, err := svc.Summary("ghost-school")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTenantMissing.Code, appErrors.FromError(err).Code)
}
