package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type academicsStore interface {
	schoolReader
	AddStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error)
	SetStudentStatus(ctx context.Context, schoolID, studentID string, status models.PersonStatus) error
	AppendBehaviorNote(ctx context.Context, schoolID, studentID string, note models.BehaviorNote) error
	AddTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, schoolID, teacherID string) error
	AddClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error)
	UpdateClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error)
	AddCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error)
	AddGrade(ctx context.Context, schoolID string, grade models.Grade) (*models.Grade, error)
}

// AcademicsService wraps the roster and grading store actions and renders
// grades under the tenant's grading system.
type AcademicsService struct {
	store     academicsStore
	validator *validator.Validate
	logger    *zap.Logger
}

func NewAcademicsService(store academicsStore, validate *validator.Validate, logger *zap.Logger) *AcademicsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicsService{store: store, validator: validate, logger: logger}
}

// CreateStudent registers a learner from the request payload.
func (s *AcademicsService) CreateStudent(ctx context.Context, schoolID string, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Sex:         req.Sex,
		GradeLevel:  req.GradeLevel,
		ClassID:     req.ClassID,
		ParentName:  req.ParentName,
		ParentEmail: req.ParentEmail,
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "birth_date must be YYYY-MM-DD")
		}
		student.BirthDate = birth
	}
	return s.store.AddStudent(ctx, schoolID, student)
}

// ListStudents returns students, optionally filtered by class and status.
func (s *AcademicsService) ListStudents(schoolID, classID string, status models.PersonStatus) ([]models.Student, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Student, 0, len(school.Students))
	for _, stu := range school.Students {
		if classID != "" && stu.ClassID != classID {
			continue
		}
		if status != "" && stu.Status != status {
			continue
		}
		out = append(out, stu)
	}
	return out, nil
}

// GetStudent returns one student.
func (s *AcademicsService) GetStudent(schoolID, studentID string) (*models.Student, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	for i := range school.Students {
		if school.Students[i].ID == studentID {
			return &school.Students[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// UpdateStudent replaces a student record.
func (s *AcademicsService) UpdateStudent(ctx context.Context, schoolID string, student models.Student) (*models.Student, error) {
	return s.store.UpdateStudent(ctx, schoolID, student)
}

// SetStudentStatus marks a student active, inactive or transferred.
// Students are never hard deleted.
func (s *AcademicsService) SetStudentStatus(ctx context.Context, schoolID, studentID string, status models.PersonStatus) error {
	switch status {
	case models.StatusActive, models.StatusInactive, models.StatusTransferred:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown student status")
	}
	return s.store.SetStudentStatus(ctx, schoolID, studentID, status)
}

// AddBehaviorNote appends a behavioural assessment to a student.
func (s *AcademicsService) AddBehaviorNote(ctx context.Context, schoolID, studentID string, note models.BehaviorNote) error {
	if note.Note == "" {
		return appErrors.Clone(appErrors.ErrValidation, "note text required")
	}
	return s.store.AppendBehaviorNote(ctx, schoolID, studentID, note)
}

// CreateTeacher registers a staff member.
func (s *AcademicsService) CreateTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error) {
	if teacher.FullName == "" || teacher.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher name and subject required")
	}
	return s.store.AddTeacher(ctx, schoolID, teacher)
}

// UpdateTeacher replaces a teacher record.
func (s *AcademicsService) UpdateTeacher(ctx context.Context, schoolID string, teacher models.Teacher) (*models.Teacher, error) {
	return s.store.UpdateTeacher(ctx, schoolID, teacher)
}

// DeleteTeacher removes a teacher record.
func (s *AcademicsService) DeleteTeacher(ctx context.Context, schoolID, teacherID string) error {
	return s.store.DeleteTeacher(ctx, schoolID, teacherID)
}

// ListTeachers returns the staff roster.
func (s *AcademicsService) ListTeachers(schoolID string) ([]models.Teacher, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	return school.Teachers, nil
}

// CreateClass registers a grade-level section.
func (s *AcademicsService) CreateClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error) {
	if class.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class name required")
	}
	return s.store.AddClass(ctx, schoolID, class)
}

// UpdateClass replaces a class record.
func (s *AcademicsService) UpdateClass(ctx context.Context, schoolID string, class models.Class) (*models.Class, error) {
	return s.store.UpdateClass(ctx, schoolID, class)
}

// ListClasses returns every class.
func (s *AcademicsService) ListClasses(schoolID string) ([]models.Class, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	return school.Classes, nil
}

// CreateCourse binds a subject, teacher and class.
func (s *AcademicsService) CreateCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error) {
	if course.Subject == "" || course.ClassID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course subject and class required")
	}
	return s.store.AddCourse(ctx, schoolID, course)
}

// UpdateCourse replaces a course record.
func (s *AcademicsService) UpdateCourse(ctx context.Context, schoolID string, course models.Course) (*models.Course, error) {
	return s.store.UpdateCourse(ctx, schoolID, course)
}

// ListCourses returns courses, optionally filtered by class or teacher.
func (s *AcademicsService) ListCourses(schoolID, classID, teacherID string) ([]models.Course, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Course, 0, len(school.Courses))
	for _, course := range school.Courses {
		if classID != "" && course.ClassID != classID {
			continue
		}
		if teacherID != "" && course.TeacherID != teacherID {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

// RecordGrade appends a grade fact and returns it rendered under the
// school's grading system.
func (s *AcademicsService) RecordGrade(ctx context.Context, schoolID string, req dto.RecordGradeRequest, teacherID, teacherName string) (*dto.GradeView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	grade, err := s.store.AddGrade(ctx, schoolID, models.Grade{
		StudentID:   req.StudentID,
		Subject:     req.Subject,
		Score:       req.Score,
		Type:        req.Type,
		Description: req.Description,
		TeacherID:   teacherID,
		TeacherName: teacherName,
	})
	if err != nil {
		return nil, err
	}
	return &dto.GradeView{Grade: *grade, Display: FormatScore(grade.Score, school.Profile.GradingSystem)}, nil
}

// ListGrades returns a student's grades rendered under the grading system.
func (s *AcademicsService) ListGrades(schoolID, studentID, subject string) ([]dto.GradeView, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.GradeView, 0, len(school.Grades))
	for _, g := range school.Grades {
		if studentID != "" && g.StudentID != studentID {
			continue
		}
		if subject != "" && g.Subject != subject {
			continue
		}
		views = append(views, dto.GradeView{Grade: g, Display: FormatScore(g.Score, school.Profile.GradingSystem)})
	}
	return views, nil
}

// ReportCard bundles one student's formatted grades and attendance tally.
func (s *AcademicsService) ReportCard(schoolID, studentID string) (*dto.StudentReportCard, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	var student *models.Student
	for i := range school.Students {
		if school.Students[i].ID == studentID {
			student = &school.Students[i]
			break
		}
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	card := &dto.StudentReportCard{
		SchoolID:    school.ID,
		SchoolName:  school.Profile.Name,
		StudentID:   student.ID,
		StudentName: student.FullName,
		GradeLevel:  student.GradeLevel,
	}
	var grades []models.Grade
	for _, g := range school.Grades {
		if g.StudentID != studentID {
			continue
		}
		grades = append(grades, g)
		card.Grades = append(card.Grades, dto.GradeView{Grade: g, Display: FormatScore(g.Score, school.Profile.GradingSystem)})
	}
	card.Average = StudentAverage(grades)
	card.AverageText = FormatScore(formatFloat(card.Average), school.Profile.GradingSystem)
	var records []models.AttendanceRecord
	for _, rec := range school.Attendance {
		if rec.StudentID == studentID {
			records = append(records, rec)
		}
	}
	card.Attendance = SummarizeAttendance(records)
	return card, nil
}
