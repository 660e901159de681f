package dto

import (
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the data needed to create a new employee.
type CreateEmployeeRequest struct {
	Name              string              `json:"name" binding:"required"`
	EmployeeType      domain.EmployeeType `json:"employeeType" binding:"required,oneof=WORKER MR"`
	BaseMonthlySalary decimal.Decimal     `json:"baseMonthlySalary" binding:"required"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name              *string          `json:"name"`
	BaseMonthlySalary *decimal.Decimal `json:"baseMonthlySalary"`
}

// ListEmployeesParams holds parameters for listing employees.
type ListEmployeesParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit"`
	Offset     int  `form:"offset"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID        string              `json:"employeeID"`
	Name              string              `json:"name"`
	EmployeeType      domain.EmployeeType `json:"employeeType"`
	BaseMonthlySalary decimal.Decimal     `json:"baseMonthlySalary"`
	IsActive          bool                `json:"isActive"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
	LastUpdatedAt     time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy     string              `json:"lastUpdatedBy"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:        e.EmployeeID,
		Name:              e.Name,
		EmployeeType:      e.EmployeeType,
		BaseMonthlySalary: e.BaseMonthlySalary,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
}

// ToEmployeeResponses converts a slice of domain employees to response DTOs
func ToEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = ToEmployeeResponse(&employees[i])
	}
	return resp
}
