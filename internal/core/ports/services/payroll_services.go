package services

import (
	"context"
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee master data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves an employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees.
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee master data
type EmployeeWriterSvc interface {
	// CreateEmployee creates a new employee.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)

	// UpdateEmployee updates an existing employee's details.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error)

	// DeactivateEmployee soft-deactivates an employee.
	DeactivateEmployee(ctx context.Context, employeeID string, requestingUserID string) error
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}

// PayrollSvcFacade converts attendance into salary accruals.
type PayrollSvcFacade interface {
	// UpsertMonthAttendance writes a month's attendance marks for an
	// employee, overwriting existing records for the same days.
	UpsertMonthAttendance(ctx context.Context, employeeID string, req dto.UpsertAttendanceRequest, requestingUserID string) ([]domain.AttendanceRecord, error)

	// ListAttendance retrieves an employee's attendance for one month.
	ListAttendance(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.AttendanceRecord, error)

	// ComputeSalary derives the attendance-prorated salary for one
	// employee and one (year, month) pair. Days without a record count as
	// Absent; daysInMonth is the actual calendar day count.
	ComputeSalary(ctx context.Context, employeeID string, year int, month time.Month) (*domain.SalaryAccrual, error)
}
