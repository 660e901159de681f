package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/core/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

// ledgerHandler handles HTTP requests for charges, payments and balances.
type ledgerHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade, ps portssvc.PaymentSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, paymentService: ps}
}

// RegisterLedgerRoutes registers the per-party ledger routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newLedgerHandler(ledgerService, paymentService)

	parties := rg.Group("/parties/:id")
	{
		parties.POST("/charges", h.createCharge)
		parties.GET("/charges", h.listCharges)
		parties.POST("/payments", h.createPayment)
		parties.GET("/payments", h.listPayments)
		parties.GET("/balance", h.getBalance)
	}
}

// createCharge godoc
// @Summary Append a charge event
// @Description Records an amount owed by a party from a finalized business document
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param charge body dto.CreateChargeRequest true "Charge details"
// @Success 201 {object} dto.LedgerEventResponse
// @Failure 400 {object} map[string]string "Invalid input or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to append charge"
// @Security BearerAuth
// @Router /parties/{id}/charges [post]
func (h *ledgerHandler) createCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var req dto.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	event, err := h.ledgerService.AppendCharge(c.Request.Context(), partyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to append charge in service", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to append charge"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEventResponse(event))
}

// eventLister is either ListCharges or ListPayments on the ledger service.
type eventLister func(ctx context.Context, partyID string, params dto.ListEventsParams) ([]domain.LedgerEvent, error)

func (h *ledgerHandler) listEvents(c *gin.Context, list eventLister, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	events, err := list(c.Request.Context(), partyID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error(failureMsg, slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEventResponses(events))
}

// listCharges godoc
// @Summary List charge events
// @Description Retrieves a party's charge and adjustment events, ascending by occurred-at
// @Tags ledger
// @Produce json
// @Param id path string true "Party ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.LedgerEventResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to list charges"
// @Security BearerAuth
// @Router /parties/{id}/charges [get]
func (h *ledgerHandler) listCharges(c *gin.Context) {
	h.listEvents(c, h.ledgerService.ListCharges, "Failed to list charges")
}

// listPayments godoc
// @Summary List payment events
// @Description Retrieves a party's payment events, ascending by occurred-at
// @Tags ledger
// @Produce json
// @Param id path string true "Party ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.LedgerEventResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /parties/{id}/payments [get]
func (h *ledgerHandler) listPayments(c *gin.Context) {
	h.listEvents(c, h.ledgerService.ListPayments, "Failed to list payments")
}

// getBalance godoc
// @Summary Get a party's balance
// @Description Derives {totalCharged, totalPaid, outstanding} from the full event history
// @Tags ledger
// @Produce json
// @Param id path string true "Party ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /parties/{id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	summary, err := h.ledgerService.GetBalance(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(summary))
}

// createPayment godoc
// @Summary Apply a payment
// @Description Validates and records a payment against a party's outstanding balance
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param Idempotency-Key header string false "Client retry key; a repeated key is rejected with 409"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 409 {object} map[string]string "Duplicate idempotency key"
// @Failure 422 {object} map[string]string "Payment rejected by balance validation"
// @Failure 500 {object} map[string]string "Failed to apply payment"
// @Security BearerAuth
// @Router /parties/{id}/payments [post]
func (h *ledgerHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")

	event, balance, err := h.paymentService.ApplyPayment(c.Request.Context(), partyID, req, idempotencyKey, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUnknownParty):
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		case errors.Is(err, services.ErrNoChargesRecorded),
			errors.Is(err, services.ErrNoOutstandingBalance),
			errors.Is(err, services.ErrPaymentExceedsOutstanding),
			errors.Is(err, services.ErrDataIntegrityViolation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Idempotency key already used"})
		default:
			logger.Error("Failed to apply payment in service", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PaymentResponse{
		Payment: dto.ToLedgerEventResponse(event),
		Balance: dto.ToBalanceResponse(balance),
	})
}
