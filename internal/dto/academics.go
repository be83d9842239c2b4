package dto

import "github.com/scolara/scolara-api/internal/models"

// GradeView is a grade fact plus its display under the school's grading
// system. The stored score never changes with the system setting.
type GradeView struct {
	models.Grade
	Display string `json:"display"`
}

// CreateStudentRequest registers a learner.
type CreateStudentRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	BirthDate   string `json:"birth_date"`
	Sex         string `json:"sex"`
	GradeLevel  string `json:"grade_level" validate:"required"`
	ClassID     string `json:"class_id"`
	ParentName  string `json:"parent_name"`
	ParentEmail string `json:"parent_email" validate:"omitempty,email"`
}

// RecordGradeRequest appends a grade fact.
type RecordGradeRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Score       string `json:"score" validate:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// StudentReportCard bundles one student's formatted grades and attendance.
type StudentReportCard struct {
	SchoolID    string                   `json:"school_id"`
	SchoolName  string                   `json:"school_name"`
	StudentID   string                   `json:"student_id"`
	StudentName string                   `json:"student_name"`
	GradeLevel  string                   `json:"grade_level"`
	Grades      []GradeView              `json:"grades"`
	Average     float64                  `json:"average"`
	AverageText string                   `json:"average_text"`
	Attendance  models.AttendanceSummary `json:"attendance"`
}
