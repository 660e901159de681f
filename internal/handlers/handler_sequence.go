package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

// sequenceHandler handles HTTP requests for document numbering scopes.
type sequenceHandler struct {
	sequenceService portssvc.SequenceSvcFacade
}

// newSequenceHandler creates a new sequenceHandler.
func newSequenceHandler(ss portssvc.SequenceSvcFacade) *sequenceHandler {
	return &sequenceHandler{sequenceService: ss}
}

// registerSequenceRoutes registers routes related to document numbering.
func registerSequenceRoutes(rg *gin.RouterGroup, sequenceService portssvc.SequenceSvcFacade) {
	h := newSequenceHandler(sequenceService)

	sequences := rg.Group("/sequences")
	{
		sequences.POST("/:scope/next", h.nextNumber)
		sequences.GET("/:scope", h.getScope)
		sequences.PUT("/:scope", h.configureScope)
	}
}

// nextNumber godoc
// @Summary Allocate the next document number
// @Description Atomically allocates and formats the next number for a scope. A first-seen scope starts at "01".
// @Tags sequences
// @Produce json
// @Param scope path string true "Scope name, e.g. sales-bill"
// @Success 201 {object} dto.DocumentNumberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to allocate number"
// @Security BearerAuth
// @Router /sequences/{scope}/next [post]
func (h *sequenceHandler) nextNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeName := c.Param("scope")

	number, err := h.sequenceService.NextNumber(c.Request.Context(), scopeName)
	if err != nil {
		logger.Error("Failed to allocate document number", slog.String("error", err.Error()), slog.String("scope", scopeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate number"})
		return
	}

	c.JSON(http.StatusCreated, number)
}

// getScope godoc
// @Summary Get a numbering scope
// @Description Retrieves a scope's counter state without allocating
// @Tags sequences
// @Produce json
// @Param scope path string true "Scope name"
// @Success 200 {object} dto.SequenceScopeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Scope not found"
// @Failure 500 {object} map[string]string "Failed to retrieve scope"
// @Security BearerAuth
// @Router /sequences/{scope} [get]
func (h *sequenceHandler) getScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeName := c.Param("scope")

	seq, err := h.sequenceService.GetScope(c.Request.Context(), scopeName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scope not found"})
		} else {
			logger.Error("Failed to get sequence scope", slog.String("error", err.Error()), slog.String("scope", scopeName))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve scope"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSequenceScopeResponse(seq))
}

// configureScope godoc
// @Summary Configure a numbering scope
// @Description Creates the scope if absent and sets its zero-padding width
// @Tags sequences
// @Accept json
// @Produce json
// @Param scope path string true "Scope name"
// @Param config body dto.ConfigureScopeRequest true "Scope configuration"
// @Success 200 {object} dto.SequenceScopeResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to configure scope"
// @Security BearerAuth
// @Router /sequences/{scope} [put]
func (h *sequenceHandler) configureScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeName := c.Param("scope")

	var req dto.ConfigureScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	seq, err := h.sequenceService.ConfigureScope(c.Request.Context(), scopeName, req)
	if err != nil {
		logger.Error("Failed to configure sequence scope", slog.String("error", err.Error()), slog.String("scope", scopeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to configure scope"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSequenceScopeResponse(seq))
}
