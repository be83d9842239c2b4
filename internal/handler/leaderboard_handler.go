package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/pkg/response"
)

// LeaderboardHandler exposes academic rankings.
type LeaderboardHandler struct {
	service *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: svc}
}

// Class godoc
// @Summary Ranking within one class
// @Tags Leaderboards
// @Produce json
// @Param schoolID path string true "School ID"
// @Param classID path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/leaderboards/classes/{classID} [get]
func (h *LeaderboardHandler) Class(c *gin.Context) {
	board, err := h.service.ClassLeaderboard(schoolIDFromPath(c), c.Param("classID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}

// School godoc
// @Summary Ranking across the school
// @Tags Leaderboards
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/leaderboards/school [get]
func (h *LeaderboardHandler) School(c *gin.Context) {
	board, err := h.service.SchoolLeaderboard(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}

// Network godoc
// @Summary Top students across every tenant
// @Tags Leaderboards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /network/leaderboard [get]
func (h *LeaderboardHandler) Network(c *gin.Context) {
	board, err := h.service.NetworkLeaderboard()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}

// TeacherPerformance godoc
// @Summary Per-teacher aggregate over their courses
// @Tags Leaderboards
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/leaderboards/teachers/{id} [get]
func (h *LeaderboardHandler) TeacherPerformance(c *gin.Context) {
	perf, err := h.service.TeacherPerformance(schoolIDFromPath(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, perf, nil)
}
