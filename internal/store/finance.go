package store

import (
	"context"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

// AddFee creates a fee record for a student.
func (s *Store) AddFee(ctx context.Context, schoolID string, fee models.FinanceRecord) (*models.FinanceRecord, error) {
	defer s.observe("fee.add", s.now())
	if fee.ID == "" {
		fee.ID = newID()
	}
	if fee.CreatedAt.IsZero() {
		fee.CreatedAt = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "fees", fee); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Fees = append(school.Fees, fee)
	}
	s.mu.Unlock()
	return &fee, nil
}

// RecordPayment adds the amount to the fee's paid total. Payments are
// strictly additive; amountPaid never decreases. Overpayment past the fee
// total is accepted as-is; the source system never clamped it.
func (s *Store) RecordPayment(ctx context.Context, schoolID, feeID string, amount float64) (*models.FinanceRecord, error) {
	defer s.observe("payment.record", s.now())
	if amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment amount must be positive")
	}
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.FinanceRecord(nil), school.Fees...)
	idx := -1
	for i := range next {
		if next[i].ID == feeID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "fee record not found")
	}
	next[idx].AmountPaid += amount
	updated := next[idx]
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"fees": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Fees = next
	}
	s.mu.Unlock()
	return &updated, nil
}

// AddExpense appends a ledger line (income or expense).
func (s *Store) AddExpense(ctx context.Context, schoolID string, expense models.Expense) (*models.Expense, error) {
	defer s.observe("expense.add", s.now())
	if expense.ID == "" {
		expense.ID = newID()
	}
	if expense.Date.IsZero() {
		expense.Date = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "expenses", expense); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Expenses = append(school.Expenses, expense)
	}
	s.mu.Unlock()
	return &expense, nil
}
