package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	"github.com/quarrydesk/quarrydesk/internal/models"
	"github.com/quarrydesk/quarrydesk/internal/utils/mapping"
)

const employeeColumns = `employee_id, name, employee_type, base_monthly_salary, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxEmployeeRepository implements the employee repository interfaces using pgx
type PgxEmployeeRepository struct {
	BaseRepository
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

// NewPgxEmployeeRepository creates a new employee repository backed by a pgx pool
func NewPgxEmployeeRepository(pool *pgxpool.Pool) *PgxEmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveEmployee persists a new employee
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	model := mapping.ToModelEmployee(employee)
	query := fmt.Sprintf(`INSERT INTO employees (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, employeeColumns)
	_, err := r.Pool.Exec(ctx, query,
		model.EmployeeID, model.Name, model.EmployeeType, model.BaseMonthlySalary, model.IsActive,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "employee already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save employee", err)
	}
	return nil
}

// FindEmployeeByID retrieves a specific employee by its unique identifier
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_id = $1`, employeeColumns)
	var m models.Employee
	err := r.Pool.QueryRow(ctx, query, employeeID).Scan(
		&m.EmployeeID, &m.Name, &m.EmployeeType, &m.BaseMonthlySalary, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("employee %s not found", employeeID))
		}
		return nil, apperrors.NewAppError(500, "failed to find employee", err)
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

// ListEmployees retrieves a paginated list of employees
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees`, employeeColumns)
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY name ASC LIMIT $1 OFFSET $2"

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list employees", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var m models.Employee
		if err := rows.Scan(
			&m.EmployeeID, &m.Name, &m.EmployeeType, &m.BaseMonthlySalary, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate employee rows", err)
	}
	return mapping.ToDomainEmployeeSlice(employees), nil
}

// UpdateEmployee updates an existing employee's details
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	model := mapping.ToModelEmployee(employee)
	query := `UPDATE employees
		SET name = $2, employee_type = $3, base_monthly_salary = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE employee_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		model.EmployeeID, model.Name, model.EmployeeType, model.BaseMonthlySalary, model.IsActive,
		model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("employee %s not found", employee.EmployeeID))
	}
	return nil
}

// DeactivateEmployee marks an employee inactive. Rows are never deleted so
// historical attendance and salary computations stay valid.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	query := `UPDATE employees
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $1`
	tag, err := r.Pool.Exec(ctx, query, employeeID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("employee %s not found", employeeID))
	}
	return nil
}
