package service

import (
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
)

type rollupStore interface {
	Schools() []models.SchoolData
}

// RollupService aggregates every tenant into the platform-level view.
// Handlers gate it to the global admin role.
type RollupService struct {
	store        rollupStore
	homeTenantID string
	logger       *zap.Logger
}

// NewRollupService constructs the rollup service. homeTenantID names the
// tenant whose ledger carries the platform's own operating expenses.
func NewRollupService(store rollupStore, homeTenantID string, logger *zap.Logger) *RollupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RollupService{store: store, homeTenantID: homeTenantID, logger: logger}
}

// NetworkRollup folds all tenants into enrollment, staffing and revenue
// totals. Subscription health is read from the stored status, never
// re-derived from dates. Net profit is ARR minus the expense lines of the
// home tenant's ledger.
func (s *RollupService) NetworkRollup() *dto.NetworkRollupResponse {
	schools := s.store.Schools()
	resp := &dto.NetworkRollupResponse{
		SchoolCount: len(schools),
		Schools:     make([]dto.SchoolRollupRow, 0, len(schools)),
	}
	for _, school := range schools {
		annual := school.Profile.Subscription.MonthlyAmount * 12
		row := dto.SchoolRollupRow{
			SchoolID:           school.ID,
			Name:               school.Profile.Name,
			Tier:               school.Profile.Tier,
			Students:           len(school.Students),
			Teachers:           len(school.Teachers),
			MonthlyAmount:      school.Profile.Subscription.MonthlyAmount,
			AnnualRecurring:    annual,
			SubscriptionStatus: school.Profile.Subscription.Status,
		}
		resp.TotalStudents += row.Students
		resp.TotalTeachers += row.Teachers
		resp.ARR += annual
		switch school.Profile.Subscription.Status {
		case models.SubscriptionPaid:
			resp.PaidSchools++
		case models.SubscriptionOverdue:
			resp.OverdueSchools++
		}
		if school.ID == s.homeTenantID {
			for _, entry := range school.Expenses {
				if entry.Type == models.LedgerExpense {
					resp.OperatingExpenses += entry.Amount
				}
			}
		}
		resp.Schools = append(resp.Schools, row)
	}
	resp.NetProfit = resp.ARR - resp.OperatingExpenses
	return resp
}
