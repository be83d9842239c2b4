package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/service"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// FinanceHandler exposes fee, payment and ledger endpoints.
type FinanceHandler struct {
	service *service.FinanceService
}

func NewFinanceHandler(svc *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: svc}
}

// ListFees godoc
// @Summary List fees with derived statuses
// @Tags Finance
// @Produce json
// @Param schoolID path string true "School ID"
// @Param student_id query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/finance/fees [get]
func (h *FinanceHandler) ListFees(c *gin.Context) {
	fees, err := h.service.ListFees(schoolIDFromPath(c), c.Query("student_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees, nil)
}

// ChargeFee godoc
// @Summary Charge a fee to a student
// @Tags Finance
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body service.CreateFeeRequest true "Fee payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/finance/fees [post]
func (h *FinanceHandler) ChargeFee(c *gin.Context) {
	var req service.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	fee, err := h.service.ChargeFee(c.Request.Context(), schoolIDFromPath(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// RecordPayment godoc
// @Summary Record a payment against a fee
// @Tags Finance
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param id path string true "Fee ID"
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/finance/fees/{id}/payments [post]
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	fee, err := h.service.RecordPayment(c.Request.Context(), schoolIDFromPath(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee, nil)
}

// AddLedgerEntry godoc
// @Summary Append an income or expense ledger entry
// @Tags Finance
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param payload body service.CreateExpenseRequest true "Ledger payload"
// @Success 201 {object} response.Envelope
// @Router /schools/{schoolID}/finance/ledger [post]
func (h *FinanceHandler) AddLedgerEntry(c *gin.Context) {
	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	entry, err := h.service.AddLedgerEntry(c.Request.Context(), schoolIDFromPath(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Summary godoc
// @Summary Finance summary for a school
// @Tags Finance
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolID}/finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(schoolIDFromPath(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
