package store

import (
	"context"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

// AddStudent appends a student to the tenant roster.
func (s *Store) AddStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error) {
	defer s.observe("student.add", s.now())
	if student.ID == "" {
		student.ID = newID()
	}
	now := s.now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.Status == "" {
		student.Status = models.StatusActive
	}
	if err := s.remote.AppendElement(ctx, schoolID, "students", student); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Students = append(school.Students, student)
	}
	s.mu.Unlock()
	return &student, nil
}

// UpdateStudent replaces a student entry; the whole array field is merged
// remotely to preserve per-field granularity.
func (s *Store) UpdateStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error) {
	defer s.observe("student.update", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Student(nil), school.Students...)
	idx := -1
	for i := range next {
		if next[i].ID == student.ID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student.CreatedAt = next[idx].CreatedAt
	student.UpdatedAt = s.now().UTC()
	next[idx] = student
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"students": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Students = next
	}
	s.mu.Unlock()
	return &student, nil
}

// SetStudentStatus flips the lifecycle flag; students are never hard deleted.
func (s *Store) SetStudentStatus(ctx context.Context, schoolID, studentID string, status models.PersonStatus) error {
	defer s.observe("student.status", s.now())
	student, err := s.findStudent(schoolID, studentID)
	if err != nil {
		return err
	}
	student.Status = status
	_, err = s.UpdateStudent(ctx, schoolID, *student)
	return err
}

// AppendBehaviorNote attaches a behavioural assessment to a student.
func (s *Store) AppendBehaviorNote(ctx context.Context, schoolID, studentID string, note models.BehaviorNote) error {
	defer s.observe("student.behavior", s.now())
	student, err := s.findStudent(schoolID, studentID)
	if err != nil {
		return err
	}
	if note.ID == "" {
		note.ID = newID()
	}
	if note.RecordedAt.IsZero() {
		note.RecordedAt = s.now().UTC()
	}
	student.Notes = append(append([]models.BehaviorNote(nil), student.Notes...), note)
	_, err = s.UpdateStudent(ctx, schoolID, *student)
	return err
}

func (s *Store) findStudent(schoolID, studentID string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, ok := s.schools[schoolID]
	if !ok {
		return nil, appErrors.ErrTenantMissing
	}
	for i := range school.Students {
		if school.Students[i].ID == studentID {
			student := school.Students[i]
			return &student, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// AddTeacher appends a teacher to the tenant roster.
func (s *Store) AddTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error) {
	defer s.observe("teacher.add", s.now())
	if teacher.ID == "" {
		teacher.ID = newID()
	}
	now := s.now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	if teacher.Status == "" {
		teacher.Status = models.StatusActive
	}
	if err := s.remote.AppendElement(ctx, schoolID, "teachers", teacher); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Teachers = append(school.Teachers, teacher)
	}
	s.mu.Unlock()
	return &teacher, nil
}

// UpdateTeacher replaces a teacher entry.
func (s *Store) UpdateTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error) {
	defer s.observe("teacher.update", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Teacher(nil), school.Teachers...)
	idx := -1
	for i := range next {
		if next[i].ID == teacher.ID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	teacher.CreatedAt = next[idx].CreatedAt
	teacher.UpdatedAt = s.now().UTC()
	next[idx] = teacher
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"teachers": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Teachers = next
	}
	s.mu.Unlock()
	return &teacher, nil
}

// DeleteTeacher removes a teacher entry remotely and locally.
func (s *Store) DeleteTeacher(ctx context.Context, schoolID, teacherID string) error {
	defer s.observe("teacher.delete", s.now())
	if _, err := s.Snapshot(schoolID); err != nil {
		return err
	}
	if err := s.remote.RemoveElement(ctx, schoolID, "teachers", teacherID); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		next := school.Teachers[:0:0]
		for _, t := range school.Teachers {
			if t.ID != teacherID {
				next = append(next, t)
			}
		}
		school.Teachers = next
	}
	s.mu.Unlock()
	return nil
}

// AddClass registers a grade-level section.
func (s *Store) AddClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error) {
	defer s.observe("class.add", s.now())
	if class.ID == "" {
		class.ID = newID()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "classes", class); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Classes = append(school.Classes, class)
	}
	s.mu.Unlock()
	return &class, nil
}

// UpdateClass replaces a class entry.
func (s *Store) UpdateClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error) {
	defer s.observe("class.update", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Class(nil), school.Classes...)
	idx := -1
	for i := range next {
		if next[i].ID == class.ID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	next[idx] = class
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"classes": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Classes = next
	}
	s.mu.Unlock()
	return &class, nil
}

// AddCourse binds a subject, teacher and class with a weekly schedule.
func (s *Store) AddCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error) {
	defer s.observe("course.add", s.now())
	if course.ID == "" {
		course.ID = newID()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "courses", course); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Courses = append(school.Courses, course)
	}
	s.mu.Unlock()
	return &course, nil
}

// UpdateCourse replaces a course entry, schedule included.
func (s *Store) UpdateCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error) {
	defer s.observe("course.update", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Course(nil), school.Courses...)
	idx := -1
	for i := range next {
		if next[i].ID == course.ID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	next[idx] = course
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"courses": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Courses = next
	}
	s.mu.Unlock()
	return &course, nil
}

// AddGrade appends an immutable grade fact. There is no update or delete.
func (s *Store) AddGrade(ctx context.Context, schoolID string, grade models.Grade) (*models.Grade, error) {
	defer s.observe("grade.add", s.now())
	if grade.ID == "" {
		grade.ID = newID()
	}
	if grade.RecordedAt.IsZero() {
		grade.RecordedAt = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "grades", grade); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Grades = append(school.Grades, grade)
	}
	s.mu.Unlock()
	return &grade, nil
}

// RecordAttendance upserts the attendance set for one (course, date) pair:
// prior records for that exact pair are replaced, never accumulated.
func (s *Store) RecordAttendance(ctx context.Context, schoolID, courseID, date string, records []models.AttendanceRecord) error {
	defer s.observe("attendance.record", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return appErrors.ErrTenantMissing
	}
	next := make([]models.AttendanceRecord, 0, len(school.Attendance)+len(records))
	for _, rec := range school.Attendance {
		if rec.CourseID == courseID && rec.Date == date {
			continue
		}
		next = append(next, rec)
	}
	s.mu.RUnlock()
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = newID()
		}
		rec.CourseID = courseID
		rec.Date = date
		next = append(next, rec)
	}
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"attendance": next}); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Attendance = next
	}
	s.mu.Unlock()
	return nil
}
