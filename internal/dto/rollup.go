package dto

import "github.com/scolara/scolara-api/internal/models"

// SchoolRollupRow is one tenant's line in the network rollup.
type SchoolRollupRow struct {
	SchoolID           string                    `json:"school_id"`
	Name               string                    `json:"name"`
	Tier               models.SchoolTier         `json:"tier"`
	Students           int                       `json:"students"`
	Teachers           int                       `json:"teachers"`
	MonthlyAmount      float64                   `json:"monthly_amount"`
	AnnualRecurring    float64                   `json:"annual_recurring"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status"`
}

// NetworkRollupResponse is the global-admin view of the whole platform.
type NetworkRollupResponse struct {
	SchoolCount       int               `json:"school_count"`
	TotalStudents     int               `json:"total_students"`
	TotalTeachers     int               `json:"total_teachers"`
	ARR               float64           `json:"arr"`
	PaidSchools       int               `json:"paid_schools"`
	OverdueSchools    int               `json:"overdue_schools"`
	OperatingExpenses float64           `json:"operating_expenses"`
	NetProfit         float64           `json:"net_profit"`
	Schools           []SchoolRollupRow `json:"schools"`
}
