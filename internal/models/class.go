package models

// Class is a grade-level section (e.g. "Grade 10-A") with a homeroom teacher.
type Class struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	GradeLevel      string `json:"grade_level"`
	HomeroomTeacher string `json:"homeroom_teacher"`
	Room            string `json:"room"`
}

// ScheduleSlot is one weekly meeting of a course.
type ScheduleSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// Course binds a subject, a teacher and a class with a weekly schedule.
// A class may host several courses, one per subject.
type Course struct {
	ID        string         `json:"id"`
	Subject   string         `json:"subject"`
	TeacherID string         `json:"teacher_id"`
	ClassID   string         `json:"class_id"`
	Schedule  []ScheduleSlot `json:"schedule"`
}
