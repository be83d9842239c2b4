package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// AdmissionHandler exposes the application pipeline.
type AdmissionHandler struct {
	service *service.AdmissionService
}

func NewAdmissionHandler(svc *service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{service: svc}
}

// Submit godoc
// @Summary Submit an admission application
// @Tags Admissions
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body models.Admission true "Application payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/admissions [post]
func (h *AdmissionHandler) Submit(c *gin.Context) {
	var admission models.Admission
	if err := c.ShouldBindJSON(&admission); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.Submit(c.Request.Context(), schoolIDFromPath(c), admission)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// List godoc
// @Summary List admission applications
// @Tags Admissions
// @Produce json
// @Param schoolID path string true "School ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/admissions [get]
func (h *AdmissionHandler) List(c *gin.Context) {
	admissions, err := h.service.List(schoolIDFromPath(c), models.AdmissionStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admissions, nil)
}

// Decide godoc
// @Summary Move an application through the pipeline
// @Description Approving an application enrolls the student before the
// decision is stored; enrollment failure leaves the application pending.
// @Tags Admissions
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/admissions/{id}/decision [post]
func (h *AdmissionHandler) Decide(c *gin.Context) {
	var body struct {
		Status models.AdmissionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	admission, err := h.service.Decide(c.Request.Context(), schoolIDFromPath(c), c.Param("id"), body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admission, nil)
}
