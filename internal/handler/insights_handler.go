package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/pkg/response"
)

// InsightsHandler proxies student analysis to the external collaborator.
type InsightsHandler struct {
	service *service.InsightsService
}

func NewInsightsHandler(svc *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: svc}
}

// Student godoc
// @Summary AI narrative for one student
// @Description Read-only: assembles the student's grades and attendance,
// sends them to the insights collaborator and relays the analysis.
// @Tags Insights
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /schools/{schoolID}/students/{id}/insights [get]
func (h *InsightsHandler) Student(c *gin.Context) {
	insights, err := h.service.StudentInsights(c.Request.Context(), schoolIDFromPath(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, insights, nil)
}
