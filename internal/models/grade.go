package models

import "time"

// GradingSystem selects how a stored 0-20 score is displayed. The stored
// score itself never changes with this setting.
type GradingSystem string

const (
	GradingTwentyPoint GradingSystem = "20-Point"
	GradingLetter      GradingSystem = "Letter"
	GradingGPA         GradingSystem = "GPA"
)

// Grade is an immutable assessment fact on a 0-20 scale. The score is kept
// string-encoded as received; conversion happens on read. Grades are
// append-only: no edit or delete path exists.
type Grade struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Subject     string    `json:"subject"`
	Score       string    `json:"score"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	RecordedAt  time.Time `json:"recorded_at"`
}
