package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// PlatformHandler exposes the global-admin surface: tenant provisioning,
// billing state and the cross-tenant rollup.
type PlatformHandler struct {
	provisioning *service.ProvisioningService
	rollup       *service.RollupService
}

func NewPlatformHandler(provisioning *service.ProvisioningService, rollup *service.RollupService) *PlatformHandler {
	return &PlatformHandler{provisioning: provisioning, rollup: rollup}
}

// ProvisionSchool godoc
// @Summary Provision a new tenant
// @Description Creates the school document, bootstraps its first admin
// account and sends the welcome email.
// @Tags Platform
// @Accept json
// @Produce json
// @Param payload body service.ProvisionSchoolRequest true "Provisioning payload"
// @Success 201 {object} response.Envelope
// @Router /network/schools [post]
func (h *PlatformHandler) ProvisionSchool(c *gin.Context) {
	var req service.ProvisionSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	school, err := h.provisioning.ProvisionSchool(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, school)
}

// UpdateSubscription godoc
// @Summary Update a tenant's billing state
// @Tags Platform
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 204
// @Router /network/schools/{schoolID}/subscription [put]
func (h *PlatformHandler) UpdateSubscription(c *gin.Context) {
	var sub models.Subscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.provisioning.UpdateSubscription(c.Request.Context(), c.Param("schoolID"), sub); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// NetworkRollup godoc
// @Summary Cross-tenant business rollup
// @Description ARR, per-school headcounts and operating profit for the
// whole network.
// @Tags Platform
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /network/rollup [get]
func (h *PlatformHandler) NetworkRollup(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.rollup.NetworkRollup(), nil)
}
