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

// AttendanceHandler exposes attendance recording and summaries.
type AttendanceHandler struct {
	service *service.AttendanceService
}

func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Record godoc
// @Summary Record attendance for a course on a date
// @Description Replaces existing records for the same course and date.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body dto.RecordAttendanceRequest true "Attendance sheet"
// @Success 204
// @Router /schools/{schoolID}/attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	records := make([]models.AttendanceRecord, 0, len(req.Records))
	for _, entry := range req.Records {
		records = append(records, models.AttendanceRecord{
			StudentID: entry.StudentID,
			CourseID:  req.CourseID,
			Date:      req.Date,
			Status:    entry.Status,
		})
	}
	if err := h.service.Record(c.Request.Context(), schoolIDFromPath(c), req.CourseID, req.Date, records); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Param schoolID path string true "School ID"
// @Param student_id query string false "Filter by student"
// @Param course_id query string false "Filter by course"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.service.List(schoolIDFromPath(c), c.Query("student_id"), c.Query("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// StudentSummary godoc
// @Summary Attendance summary for one student
// @Tags Attendance
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/attendance/students/{id} [get]
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	summary, err := h.service.StudentSummary(schoolIDFromPath(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// SchoolSummary godoc
// @Summary Attendance summary across the school
// @Tags Attendance
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/attendance/summary [get]
func (h *AttendanceHandler) SchoolSummary(c *gin.Context) {
	summary, err := h.service.SchoolSummary(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
