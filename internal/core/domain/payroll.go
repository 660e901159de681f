package domain

import "github.com/shopspring/decimal"

// SalaryAccrual is the result of one payroll computation for one employee
// and one calendar month.
type SalaryAccrual struct {
	EmployeeID  string          `json:"employeeID"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	DaysInMonth int             `json:"daysInMonth"`
	PresentDays int             `json:"presentDays"`
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Amount      decimal.Decimal `json:"amount"` // Rounded to 2 decimal places
}
