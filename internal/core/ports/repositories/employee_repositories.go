package repositories

import (
	"context"
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// EmployeeReader defines read operations for employee master data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by its unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees.
	// When activeOnly is true, deactivated employees are excluded.
	ListEmployees(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee master data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates an existing employee's details.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeactivateEmployee marks an employee inactive. Historical salary and
	// attendance records stay valid; rows are never physically deleted.
	DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}

// AttendanceRepository owns the attendance table, keyed (employee_id, work_date).
type AttendanceRepository interface {
	// UpsertAttendance writes one record per (employee, date), overwriting
	// an existing mark for the same day.
	UpsertAttendance(ctx context.Context, records []domain.AttendanceRecord) error

	// ListAttendanceForMonth retrieves an employee's records for one
	// calendar month, ordered by date.
	ListAttendanceForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.AttendanceRecord, error)
}
