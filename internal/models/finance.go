package models

import "time"

// FeeStatus is derived from balance and due date, never stored
// authoritatively on the record.
type FeeStatus string

const (
	FeePaid          FeeStatus = "Paid"
	FeePartiallyPaid FeeStatus = "Partially Paid"
	FeePending       FeeStatus = "Pending"
	FeeOverdue       FeeStatus = "Overdue"
)

// FinanceRecord is a fee charged to a student. AmountPaid only ever grows
// through payments; no clamp against TotalAmount is applied on entry.
type FinanceRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Description string    `json:"description"`
	TotalAmount float64   `json:"total_amount"`
	AmountPaid  float64   `json:"amount_paid"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseType separates ledger lines into income and expense.
type ExpenseType string

const (
	LedgerIncome  ExpenseType = "Income"
	LedgerExpense ExpenseType = "Expense"
)

// Expense is a school ledger line, independent of student fees.
type Expense struct {
	ID          string      `json:"id"`
	Type        ExpenseType `json:"type"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      float64     `json:"amount"`
	Date        time.Time   `json:"date"`
	ProofRef    string      `json:"proof_ref,omitempty"`
}

// FinanceTotals aggregates a fee collection.
type FinanceTotals struct {
	Revenue float64 `json:"revenue"`
	Pending float64 `json:"pending"`
	Overdue float64 `json:"overdue"`
}
