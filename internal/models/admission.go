package models

import "time"

// AdmissionStatus tracks an application through its state machine:
// Pending -> {Approved, Rejected, Waitlisted}; Waitlisted -> {Approved,
// Rejected}. Approved and Rejected are terminal.
type AdmissionStatus string

const (
	AdmissionPending    AdmissionStatus = "Pending"
	AdmissionApproved   AdmissionStatus = "Approved"
	AdmissionRejected   AdmissionStatus = "Rejected"
	AdmissionWaitlisted AdmissionStatus = "Waitlisted"
)

// Admission is an application record. Approval triggers creation of a
// Student with grade and class parsed from AppliedFor.
type Admission struct {
	ID          string          `json:"id"`
	FullName    string          `json:"full_name"`
	BirthDate   time.Time       `json:"birth_date"`
	Sex         string          `json:"sex"`
	ParentName  string          `json:"parent_name"`
	ParentEmail string          `json:"parent_email"`
	Phone       string          `json:"phone"`
	AppliedFor  string          `json:"applied_for"`
	Status      AdmissionStatus `json:"status"`
	SubmittedAt time.Time       `json:"submitted_at"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
}
