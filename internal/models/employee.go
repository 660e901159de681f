package models

import "github.com/shopspring/decimal"

// Employee represents a row in the employees table.
type Employee struct {
	EmployeeID        string          `db:"employee_id"`
	Name              string          `db:"name"`
	EmployeeType      string          `db:"employee_type"`
	BaseMonthlySalary decimal.Decimal `db:"base_monthly_salary"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}
