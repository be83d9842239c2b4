package service

import (
	"time"

	"github.com/scolara/scolara-api/internal/models"
)

// FeeBalance returns the amount still owed on a fee.
func FeeBalance(fee models.FinanceRecord) float64 {
	return fee.TotalAmount - fee.AmountPaid
}

// FeeStatus derives the payment status. The check order is part of the
// contract: Paid wins before Overdue, so a fully paid fee past its due
// date reads Paid, not Overdue.
func FeeStatus(fee models.FinanceRecord, now time.Time) models.FeeStatus {
	balance := FeeBalance(fee)
	switch {
	case balance <= 0:
		return models.FeePaid
	case fee.DueDate.Before(now):
		return models.FeeOverdue
	case fee.AmountPaid > 0:
		return models.FeePartiallyPaid
	default:
		return models.FeePending
	}
}

// SumFinanceTotals folds a fee collection into revenue, pending and
// overdue figures. Revenue counts every payment received regardless of
// the fee's current status.
func SumFinanceTotals(fees []models.FinanceRecord, now time.Time) models.FinanceTotals {
	var totals models.FinanceTotals
	for _, fee := range fees {
		totals.Revenue += fee.AmountPaid
		balance := FeeBalance(fee)
		if balance <= 0 {
			continue
		}
		if fee.DueDate.Before(now) {
			totals.Overdue += balance
		} else {
			totals.Pending += balance
		}
	}
	return totals
}

// LedgerNet sums income minus expense over a ledger, independent of fee
// revenue. Adding fee revenue on top yields the school-wide net figure.
func LedgerNet(entries []models.Expense) float64 {
	var net float64
	for _, entry := range entries {
		switch entry.Type {
		case models.LedgerIncome:
			net += entry.Amount
		case models.LedgerExpense:
			net -= entry.Amount
		}
	}
	return net
}
