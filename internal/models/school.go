package models

import "time"

// SchoolTier is the subscription plan of a tenant.
type SchoolTier string

const (
	TierStarter SchoolTier = "Starter"
	TierPro     SchoolTier = "Pro"
	TierPremium SchoolTier = "Premium"
)

// SubscriptionStatus is stored, not derived like student fee status.
type SubscriptionStatus string

const (
	SubscriptionPaid    SubscriptionStatus = "Paid"
	SubscriptionOverdue SubscriptionStatus = "Overdue"
)

// Subscription is the tenant's billing state on the platform.
type Subscription struct {
	MonthlyAmount float64            `json:"monthly_amount"`
	Status        SubscriptionStatus `json:"status"`
	PaidUntil     *time.Time         `json:"paid_until,omitempty"`
}

// SchoolProfile is tenant-level configuration.
type SchoolProfile struct {
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	ContactEmail   string             `json:"contact_email"`
	Tier           SchoolTier         `json:"tier"`
	Currency       string             `json:"currency"`
	GradingSystem  GradingSystem      `json:"grading_system"`
	Subscription   Subscription       `json:"subscription"`
	GradeCapacity  map[string]int     `json:"grade_capacity,omitempty"`
	KioskSlideSecs int                `json:"kiosk_slide_secs,omitempty"`
	TemplateRefs   map[string]string  `json:"template_refs,omitempty"`
}

// SchoolData is the full document of one tenant: the profile plus every
// normalized collection. It is persisted as one JSONB document and
// mirrored in memory by the entity store.
type SchoolData struct {
	ID          string             `json:"id"`
	Profile     SchoolProfile      `json:"profile"`
	Students    []Student          `json:"students"`
	Teachers    []Teacher          `json:"teachers"`
	Classes     []Class            `json:"classes"`
	Courses     []Course           `json:"courses"`
	Grades      []Grade            `json:"grades"`
	Attendance  []AttendanceRecord `json:"attendance"`
	Fees        []FinanceRecord    `json:"fees"`
	Expenses    []Expense          `json:"expenses"`
	Admissions  []Admission        `json:"admissions"`
	Teams       []Team             `json:"teams"`
	Competitions []Competition     `json:"competitions"`
	Messages    []Message          `json:"messages"`
	Activity    []ActivityLog      `json:"activity"`
	Accounts    []Account          `json:"accounts,omitempty"`
}
