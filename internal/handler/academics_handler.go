package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// AcademicsHandler exposes roster and grading endpoints.
type AcademicsHandler struct {
	service *service.AcademicsService
}

// NewAcademicsHandler constructs the academics handler.
func NewAcademicsHandler(svc *service.AcademicsService) *AcademicsHandler {
	return &AcademicsHandler{service: svc}
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param schoolID path string true "School ID"
// @Param class_id query string false "Filter by class"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/students [get]
func (h *AcademicsHandler) ListStudents(c *gin.Context) {
	students, err := h.service.ListStudents(schoolIDFromPath(c), c.Query("class_id"), models.PersonStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// GetStudent godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/students/{id} [get]
func (h *AcademicsHandler) GetStudent(c *gin.Context) {
	student, err := h.service.GetStudent(schoolIDFromPath(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// CreateStudent godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/students [post]
func (h *AcademicsHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	student, err := h.service.CreateStudent(c.Request.Context(), schoolIDFromPath(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// UpdateStudent godoc
// @Summary Update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Param payload body models.Student true "Student record"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/students/{id} [put]
func (h *AcademicsHandler) UpdateStudent(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	student.ID = c.Param("id")
	updated, err := h.service.UpdateStudent(c.Request.Context(), schoolIDFromPath(c), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// SetStudentStatus godoc
// @Summary Change a student's lifecycle status
// @Tags Students
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 204
// @Router /schools/{schoolID}/students/{id}/status [patch]
func (h *AcademicsHandler) SetStudentStatus(c *gin.Context) {
	var body struct {
		Status models.PersonStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.SetStudentStatus(c.Request.Context(), schoolIDFromPath(c), c.Param("id"), body.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddBehaviorNote godoc
// @Summary Append a behaviour note
// @Tags Students
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 204
// @Router /schools/{schoolID}/students/{id}/notes [post]
func (h *AcademicsHandler) AddBehaviorNote(c *gin.Context) {
	var note models.BehaviorNote
	if err := c.ShouldBindJSON(&note); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if claims := claimsFromContext(c); claims != nil {
		note.AuthorID = claims.UserID
		note.AuthorName = claims.FullName
	}
	if err := h.service.AddBehaviorNote(c.Request.Context(), schoolIDFromPath(c), c.Param("id"), note); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/teachers [get]
func (h *AcademicsHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.service.ListTeachers(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// CreateTeacher godoc
// @Summary Register a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body models.Teacher true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/teachers [post]
func (h *AcademicsHandler) CreateTeacher(c *gin.Context) {
	var teacher models.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.CreateTeacher(c.Request.Context(), schoolIDFromPath(c), teacher)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateTeacher godoc
// @Summary Update a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/teachers/{id} [put]
func (h *AcademicsHandler) UpdateTeacher(c *gin.Context) {
	var teacher models.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	teacher.ID = c.Param("id")
	updated, err := h.service.UpdateTeacher(c.Request.Context(), schoolIDFromPath(c), teacher)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// DeleteTeacher godoc
// @Summary Remove a teacher
// @Tags Teachers
// @Param schoolID path string true "School ID"
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /schools/{schoolID}/teachers/{id} [delete]
func (h *AcademicsHandler) DeleteTeacher(c *gin.Context) {
	if err := h.service.DeleteTeacher(c.Request.Context(), schoolIDFromPath(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListClasses godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/classes [get]
func (h *AcademicsHandler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// CreateClass godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/classes [post]
func (h *AcademicsHandler) CreateClass(c *gin.Context) {
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.CreateClass(c.Request.Context(), schoolIDFromPath(c), class)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateClass godoc
// @Summary Update a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/classes/{id} [put]
func (h *AcademicsHandler) UpdateClass(c *gin.Context) {
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	class.ID = c.Param("id")
	updated, err := h.service.UpdateClass(c.Request.Context(), schoolIDFromPath(c), class)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param schoolID path string true "School ID"
// @Param class_id query string false "Filter by class"
// @Param teacher_id query string false "Filter by teacher"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/courses [get]
func (h *AcademicsHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(schoolIDFromPath(c), c.Query("class_id"), c.Query("teacher_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/courses [post]
func (h *AcademicsHandler) CreateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.CreateCourse(c.Request.Context(), schoolIDFromPath(c), course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/courses/{id} [put]
func (h *AcademicsHandler) UpdateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	course.ID = c.Param("id")
	updated, err := h.service.UpdateCourse(c.Request.Context(), schoolIDFromPath(c), course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// ListGrades godoc
// @Summary List grades rendered under the school's grading system
// @Tags Grades
// @Produce json
// @Param schoolID path string true "School ID"
// @Param student_id query string false "Filter by student"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/grades [get]
func (h *AcademicsHandler) ListGrades(c *gin.Context) {
	grades, err := h.service.ListGrades(schoolIDFromPath(c), c.Query("student_id"), c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// RecordGrade godoc
// @Summary Append a grade fact
// @Tags Grades
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body dto.RecordGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/grades [post]
func (h *AcademicsHandler) RecordGrade(c *gin.Context) {
	var req dto.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	var teacherID, teacherName string
	if claims := claimsFromContext(c); claims != nil {
		teacherID = claims.UserID
		teacherName = claims.FullName
	}
	view, err := h.service.RecordGrade(c.Request.Context(), schoolIDFromPath(c), req, teacherID, teacherName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// ReportCard godoc
// @Summary Student report card
// @Tags Grades
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/students/{id}/report-card [get]
func (h *AcademicsHandler) ReportCard(c *gin.Context) {
	card, err := h.service.ReportCard(schoolIDFromPath(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}
