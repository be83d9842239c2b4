package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// CommunityHandler exposes teams, competitions and messaging.
type CommunityHandler struct {
	service *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: svc}
}

// ListTeams godoc
// @Summary List teams
// @Tags Community
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/teams [get]
func (h *CommunityHandler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams, nil)
}

// CreateTeam godoc
// @Summary Create a team
// @Tags Community
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/teams [post]
func (h *CommunityHandler) CreateTeam(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.CreateTeam(c.Request.Context(), schoolIDFromPath(c), team)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ListCompetitions godoc
// @Summary List competitions with derived outcomes
// @Tags Community
// @Produce json
// @Param schoolID path string true "School ID"
// @Param team_id query string false "Filter by team"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/competitions [get]
func (h *CommunityHandler) ListCompetitions(c *gin.Context) {
	comps, err := h.service.ListCompetitions(schoolIDFromPath(c), c.Query("team_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comps, nil)
}

// ScheduleCompetition godoc
// @Summary Schedule a competition for a team
// @Tags Community
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/competitions [post]
func (h *CommunityHandler) ScheduleCompetition(c *gin.Context) {
	var comp models.Competition
	if err := c.ShouldBindJSON(&comp); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	created, err := h.service.ScheduleCompetition(c.Request.Context(), schoolIDFromPath(c), comp)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// RecordResult godoc
// @Summary Record a competition result
// @Tags Community
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Competition ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/competitions/{id}/result [post]
func (h *CommunityHandler) RecordResult(c *gin.Context) {
	var body struct {
		HomeScore int `json:"home_score"`
		AwayScore int `json:"away_score"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	comp, err := h.service.RecordResult(c.Request.Context(), schoolIDFromPath(c), c.Param("id"), body.HomeScore, body.AwayScore)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comp, nil)
}

// SendMessage godoc
// @Summary Send an internal message
// @Tags Community
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/messages [post]
func (h *CommunityHandler) SendMessage(c *gin.Context) {
	var message models.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if claims := claimsFromContext(c); claims != nil {
		message.SenderID = claims.UserID
		message.SenderName = claims.FullName
	}
	sent, err := h.service.SendMessage(c.Request.Context(), schoolIDFromPath(c), message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sent)
}

// Inbox godoc
// @Summary Messages visible to the caller
// @Tags Community
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/messages [get]
func (h *CommunityHandler) Inbox(c *gin.Context) {
	var userID string
	if claims := claimsFromContext(c); claims != nil {
		userID = claims.UserID
	}
	messages, err := h.service.Inbox(schoolIDFromPath(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages, nil)
}

// MarkRead godoc
// @Summary Mark a message as read
// @Tags Community
// @Param schoolID path string true "School ID"
// @Param id path string true "Message ID"
// @Success 204
// @Router /schools/{schoolID}/messages/{id}/read [post]
func (h *CommunityHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), schoolIDFromPath(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
