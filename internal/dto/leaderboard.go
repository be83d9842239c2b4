package dto

// StudentRanking is one leaderboard row. Average is on the raw 0-20 scale;
// Display renders it in the school's grading system.
type StudentRanking struct {
	Rank        int     `json:"rank"`
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	ClassID     string  `json:"class_id,omitempty"`
	SchoolID    string  `json:"school_id,omitempty"`
	SchoolName  string  `json:"school_name,omitempty"`
	Average     float64 `json:"average"`
	Display     string  `json:"display"`
	GradeCount  int     `json:"grade_count"`
}

// LeaderboardResponse wraps a ranked list with its scope.
type LeaderboardResponse struct {
	Scope    string           `json:"scope"`
	SchoolID string           `json:"school_id,omitempty"`
	ClassID  string           `json:"class_id,omitempty"`
	Rankings []StudentRanking `json:"rankings"`
}

// TeacherPerformance aggregates grade outcomes across the students a
// teacher actually teaches.
type TeacherPerformance struct {
	TeacherID    string  `json:"teacher_id"`
	TeacherName  string  `json:"teacher_name"`
	Subject      string  `json:"subject"`
	CourseCount  int     `json:"course_count"`
	StudentCount int     `json:"student_count"`
	GradeCount   int     `json:"grade_count"`
	Average      float64 `json:"average"`
}
