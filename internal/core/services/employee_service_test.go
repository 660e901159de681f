package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/core/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

func TestCreateEmployee_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)
	userID := uuid.NewString()

	req := dto.CreateEmployeeRequest{
		Name:              "Ramesh Kumar",
		EmployeeType:      domain.Worker,
		BaseMonthlySalary: decimal.RequireFromString("25000.00"),
	}

	mockRepo.On("SaveEmployee", ctx, mock.AnythingOfType("domain.Employee")).Return(nil).Once()

	employee, err := service.CreateEmployee(ctx, req, userID)

	require.NoError(t, err)
	require.NotNil(t, employee)
	assert.NotEmpty(t, employee.EmployeeID)
	assert.Equal(t, domain.Worker, employee.EmployeeType)
	assert.True(t, employee.IsActive)
	assert.Equal(t, userID, employee.CreatedBy)
	mockRepo.AssertExpectations(t)
}

func TestCreateEmployee_NonPositiveSalary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)

	for _, salary := range []string{"0", "-1000"} {
		req := dto.CreateEmployeeRequest{
			Name:              "Ramesh Kumar",
			EmployeeType:      domain.MR,
			BaseMonthlySalary: decimal.RequireFromString(salary),
		}

		employee, err := service.CreateEmployee(ctx, req, uuid.NewString())

		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Nil(t, employee)
	}
	mockRepo.AssertNotCalled(t, "SaveEmployee", mock.Anything, mock.Anything)
}

func TestUpdateEmployee_SalaryChange(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)
	userID := uuid.NewString()

	existing := domain.Employee{
		EmployeeID:        uuid.NewString(),
		Name:              "Ramesh Kumar",
		EmployeeType:      domain.Worker,
		BaseMonthlySalary: decimal.RequireFromString("25000.00"),
		IsActive:          true,
	}
	newSalary := decimal.RequireFromString("28000.00")

	mockRepo.On("FindEmployeeByID", ctx, existing.EmployeeID).Return(&existing, nil).Once()
	mockRepo.On("UpdateEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.EmployeeID == existing.EmployeeID &&
			e.BaseMonthlySalary.Equal(newSalary) &&
			e.Name == existing.Name &&
			e.LastUpdatedBy == userID
	})).Return(nil).Once()

	updated, err := service.UpdateEmployee(ctx, existing.EmployeeID, dto.UpdateEmployeeRequest{BaseMonthlySalary: &newSalary}, userID)

	require.NoError(t, err)
	assert.True(t, updated.BaseMonthlySalary.Equal(newSalary))
	mockRepo.AssertExpectations(t)
}

func TestUpdateEmployee_RejectsNonPositiveSalary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)

	existing := domain.Employee{
		EmployeeID:        uuid.NewString(),
		Name:              "Ramesh Kumar",
		BaseMonthlySalary: decimal.RequireFromString("25000.00"),
	}
	badSalary := decimal.Zero

	mockRepo.On("FindEmployeeByID", ctx, existing.EmployeeID).Return(&existing, nil).Once()

	updated, err := service.UpdateEmployee(ctx, existing.EmployeeID, dto.UpdateEmployeeRequest{BaseMonthlySalary: &badSalary}, uuid.NewString())

	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, updated)
	mockRepo.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
}

func TestDeactivateEmployee(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)
	employeeID := uuid.NewString()
	userID := uuid.NewString()

	mockRepo.On("DeactivateEmployee", ctx, employeeID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := service.DeactivateEmployee(ctx, employeeID, userID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestListEmployees_ActiveOnly(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEmployeeRepository)
	service := services.NewEmployeeService(mockRepo)

	mockRepo.On("ListEmployees", ctx, true, 50, 0).
		Return([]domain.Employee{{EmployeeID: uuid.NewString(), IsActive: true}}, nil).Once()

	employees, err := service.ListEmployees(ctx, dto.ListEmployeesParams{ActiveOnly: true})

	require.NoError(t, err)
	assert.Len(t, employees, 1)
	mockRepo.AssertExpectations(t)
}
