package dto

import "github.com/scolara/scolara-api/internal/models"

// FeeView is a fee record with its derived balance and status attached.
type FeeView struct {
	models.FinanceRecord
	Balance float64          `json:"balance"`
	Status  models.FeeStatus `json:"status"`
}

// FinanceSummaryResponse aggregates one school's money position.
type FinanceSummaryResponse struct {
	SchoolID  string               `json:"school_id"`
	Currency  string               `json:"currency"`
	Totals    models.FinanceTotals `json:"totals"`
	LedgerNet float64              `json:"ledger_net"`
	Net       float64              `json:"net"`
}
