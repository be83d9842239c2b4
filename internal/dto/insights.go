package dto

import "github.com/scolara/scolara-api/internal/models"

// InsightsRequest is the payload sent to the insights collaborator: who
// the student is plus their raw academic signals.
type InsightsRequest struct {
	StudentID  string                   `json:"student_id"`
	FullName   string                   `json:"full_name"`
	GradeLevel string                   `json:"grade_level"`
	Grades     []InsightGrade           `json:"grades"`
	Attendance models.AttendanceSummary `json:"attendance"`
}

// InsightGrade is one assessment as the collaborator sees it.
type InsightGrade struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

// StudentInsights is the collaborator's analysis of one student.
type StudentInsights struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Areas           []string `json:"areas_for_improvement"`
	Recommendations []string `json:"recommendations"`
}
