package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

// payrollHandler handles HTTP requests for attendance and salary computation.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers the per-employee attendance and salary routes.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	employees := rg.Group("/employees/:id")
	{
		employees.PUT("/attendance", h.upsertAttendance)
		employees.GET("/attendance", h.listAttendance)
		employees.GET("/salary", h.computeSalary)
	}
}

// monthQuery holds the (year, month) pair used by attendance and salary reads.
type monthQuery struct {
	Year  int `form:"year" binding:"required,min=2000,max=2999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// upsertAttendance godoc
// @Summary Upsert attendance records
// @Description Writes attendance marks for an employee, one per day, overwriting existing marks
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param attendance body dto.UpsertAttendanceRequest true "Attendance marks"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid input format or duplicate dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to upsert attendance"
// @Security BearerAuth
// @Router /employees/{id}/attendance [put]
func (h *payrollHandler) upsertAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("id")

	var req dto.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertAttendance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.payrollService.UpsertMonthAttendance(c.Request.Context(), employeeID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert attendance in service", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponses(records))
}

// listAttendance godoc
// @Summary List attendance for a month
// @Description Retrieves an employee's attendance records for one calendar month
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month (1-12)"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to list attendance"
// @Security BearerAuth
// @Router /employees/{id}/attendance [get]
func (h *payrollHandler) listAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("id")

	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.payrollService.ListAttendance(c.Request.Context(), employeeID, q.Year, time.Month(q.Month))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logger.Error("Failed to list attendance in service", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponses(records))
}

// computeSalary godoc
// @Summary Compute an employee's salary for a month
// @Description Derives the attendance-prorated salary; days without records count as absent
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month (1-12)"
// @Success 200 {object} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to compute salary"
// @Security BearerAuth
// @Router /employees/{id}/salary [get]
func (h *payrollHandler) computeSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("id")

	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accrual, err := h.payrollService.ComputeSalary(c.Request.Context(), employeeID, q.Year, time.Month(q.Month))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute salary in service", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute salary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryResponse(accrual))
}
