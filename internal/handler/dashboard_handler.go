package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/pkg/response"
)

// DashboardHandler exposes the per-school overview.
type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Overview godoc
// @Summary School dashboard overview
// @Description Aggregated counts, finance totals and attendance buckets.
// The meta.cached flag reports whether the payload was served from Redis.
// @Tags Dashboard
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, cached, err := h.service.SchoolOverview(c.Request.Context(), schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil, map[string]interface{}{"cached": cached})
}
