package domain

import "github.com/shopspring/decimal"

// EmployeeType distinguishes the two payroll categories.
type EmployeeType string

const (
	Worker EmployeeType = "WORKER"
	MR     EmployeeType = "MR"
)

// Employee is a salaried worker whose monthly pay is prorated by attendance.
// Deactivation is a soft state transition so that historical salary and
// attendance records stay valid.
type Employee struct {
	EmployeeID        string          `json:"employeeID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	EmployeeType      EmployeeType    `json:"employeeType"`
	BaseMonthlySalary decimal.Decimal `json:"baseMonthlySalary"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
