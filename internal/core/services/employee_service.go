package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

// EmployeeService handles business logic for employee master data.
type EmployeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(er portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &EmployeeService{employeeRepo: er}
}

var _ portssvc.EmployeeSvcFacade = (*EmployeeService)(nil)

// CreateEmployee creates a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.BaseMonthlySalary.IsPositive() {
		return nil, fmt.Errorf("%w: base monthly salary must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	employee := domain.Employee{
		EmployeeID:        uuid.NewString(),
		Name:              req.Name,
		EmployeeType:      req.EmployeeType,
		BaseMonthlySalary: req.BaseMonthlySalary,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		logger.Error("Failed to save employee in repository", slog.String("error", err.Error()), slog.String("employee_name", req.Name))
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.Info("Employee created successfully", slog.String("employee_id", employee.EmployeeID), slog.String("type", string(employee.EmployeeType)))
	return &employee, nil
}

// GetEmployeeByID retrieves an employee by ID.
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// ListEmployees retrieves a paginated list of employees.
func (s *EmployeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.employeeRepo.ListEmployees(ctx, params.ActiveOnly, limit, offset)
}

// UpdateEmployee updates an existing employee's details.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.BaseMonthlySalary != nil {
		if !req.BaseMonthlySalary.IsPositive() {
			return nil, fmt.Errorf("%w: base monthly salary must be positive", apperrors.ErrValidation)
		}
		employee.BaseMonthlySalary = *req.BaseMonthlySalary
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to update employee in repository", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	logger.Info("Employee updated successfully", slog.String("employee_id", employeeID))
	return employee, nil
}

// DeactivateEmployee soft-deactivates an employee. Historical attendance and
// salary computations stay valid.
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, employeeID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.employeeRepo.DeactivateEmployee(ctx, employeeID, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to deactivate employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return err
	}

	logger.Info("Employee deactivated", slog.String("employee_id", employeeID))
	return nil
}
