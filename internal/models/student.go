package models

import "time"

// PersonStatus captures the lifecycle flag shared by students and teachers.
type PersonStatus string

const (
	StatusActive      PersonStatus = "Active"
	StatusInactive    PersonStatus = "Inactive"
	StatusTransferred PersonStatus = "Transferred"
)

// Student represents a learner registered at a school. The parent name and
// email double as the join key to the parent role. Students are never hard
// deleted; status changes mark them inactive or transferred.
type Student struct {
	ID          string       `json:"id"`
	FullName    string       `json:"full_name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	BirthDate   time.Time    `json:"birth_date"`
	Sex         string       `json:"sex"`
	GradeLevel  string       `json:"grade_level"`
	ClassID     string       `json:"class_id"`
	ParentName  string       `json:"parent_name"`
	ParentEmail string       `json:"parent_email"`
	Status      PersonStatus `json:"status"`
	Notes       []BehaviorNote `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BehaviorNote is an appended behavioural assessment on a student record.
type BehaviorNote struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Note       string    `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Teacher represents a staff member with one primary subject.
type Teacher struct {
	ID        string       `json:"id"`
	FullName  string       `json:"full_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Subject   string       `json:"subject"`
	Status    PersonStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
