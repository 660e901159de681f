package dto

import (
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttendanceMark is one (date, status) entry in a bulk attendance upsert.
type AttendanceMark struct {
	Date   time.Time               `json:"date" binding:"required" time_format:"2006-01-02"`
	Status domain.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT"`
}

// UpsertAttendanceRequest writes a month of attendance marks for one
// employee. Existing marks for the same days are overwritten.
type UpsertAttendanceRequest struct {
	Records []AttendanceMark `json:"records" binding:"required,min=1,dive"`
}

// AttendanceResponse defines the data returned for one attendance record.
type AttendanceResponse struct {
	EmployeeID string                  `json:"employeeID"`
	Date       time.Time               `json:"date"`
	Status     domain.AttendanceStatus `json:"status"`
}

// ToAttendanceResponses converts domain records to response DTOs
func ToAttendanceResponses(records []domain.AttendanceRecord) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(records))
	for i, r := range records {
		resp[i] = AttendanceResponse{
			EmployeeID: r.EmployeeID,
			Date:       r.WorkDate,
			Status:     r.Status,
		}
	}
	return resp
}

// SalaryResponse reports one attendance-prorated salary computation.
type SalaryResponse struct {
	EmployeeID  string          `json:"employeeID"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	DaysInMonth int             `json:"daysInMonth"`
	PresentDays int             `json:"presentDays"`
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToSalaryResponse converts a domain.SalaryAccrual to SalaryResponse
func ToSalaryResponse(a *domain.SalaryAccrual) SalaryResponse {
	return SalaryResponse{
		EmployeeID:  a.EmployeeID,
		Year:        a.Year,
		Month:       a.Month,
		DaysInMonth: a.DaysInMonth,
		PresentDays: a.PresentDays,
		BaseSalary:  a.BaseSalary,
		Amount:      a.Amount,
	}
}
