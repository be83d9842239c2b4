package models

// AttendanceStatus is the closed set of attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceSick    AttendanceStatus = "Sick"
)

// AttendanceRecord is one student's status for one course on one day.
// Recording attendance for a (course, date) pair replaces every prior
// record for that exact pair.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	CourseID  string           `json:"course_id"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceSummary tallies records into the four fixed buckets. Statuses
// outside the closed set are ignored.
type AttendanceSummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Sick    int `json:"sick"`
}

// Total returns the number of records counted into the buckets.
func (s AttendanceSummary) Total() int {
	return s.Present + s.Late + s.Absent + s.Sick
}
