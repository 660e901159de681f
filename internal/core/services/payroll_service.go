package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
	"github.com/quarrydesk/quarrydesk/internal/utils/payroll"
)

// PayrollService converts attendance records into salary accruals.
type PayrollService struct {
	employeeRepo   portsrepo.EmployeeReader
	attendanceRepo portsrepo.AttendanceRepository
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(er portsrepo.EmployeeReader, ar portsrepo.AttendanceRepository) portssvc.PayrollSvcFacade {
	return &PayrollService{employeeRepo: er, attendanceRepo: ar}
}

var _ portssvc.PayrollSvcFacade = (*PayrollService)(nil)

// UpsertMonthAttendance writes attendance marks for an employee, one record
// per day, overwriting existing marks for the same days.
func (s *PayrollService) UpsertMonthAttendance(ctx context.Context, employeeID string, req dto.UpsertAttendanceRequest, requestingUserID string) ([]domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Records))
	now := time.Now()
	records := make([]domain.AttendanceRecord, 0, len(req.Records))
	for _, mark := range req.Records {
		day := mark.Date.UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate attendance date %s", apperrors.ErrValidation, key)
		}
		seen[key] = true
		records = append(records, domain.AttendanceRecord{
			EmployeeID: employeeID,
			WorkDate:   day,
			Status:     mark.Status,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		})
	}

	if err := s.attendanceRepo.UpsertAttendance(ctx, records); err != nil {
		logger.Error("Failed to upsert attendance", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	logger.Info("Attendance upserted", slog.String("employee_id", employeeID), slog.Int("records", len(records)))
	return records, nil
}

// ListAttendance retrieves an employee's attendance for one month.
func (s *PayrollService) ListAttendance(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.AttendanceRecord, error) {
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListAttendanceForMonth(ctx, employeeID, year, month)
}

// ComputeSalary derives the attendance-prorated salary for one employee and
// one calendar month. Days without any record count as Absent. The result
// is computed on demand and never stored, so a late attendance correction
// just changes the next computation.
func (s *PayrollService) ComputeSalary(ctx context.Context, employeeID string, year int, month time.Month) (*domain.SalaryAccrual, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListAttendanceForMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	presentDays := 0
	for _, rec := range records {
		if rec.Status == domain.Present {
			presentDays++
		}
	}

	daysInMonth := payroll.DaysInMonth(year, month)
	amount, err := payroll.ProratedSalary(employee.BaseMonthlySalary, daysInMonth, presentDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	logger.Info("Salary computed",
		slog.String("employee_id", employeeID),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.Int("present_days", presentDays),
		slog.String("amount", amount.String()))
	return &domain.SalaryAccrual{
		EmployeeID:  employeeID,
		Year:        year,
		Month:       int(month),
		DaysInMonth: daysInMonth,
		PresentDays: presentDays,
		BaseSalary:  employee.BaseMonthlySalary,
		Amount:      amount,
	}, nil
}
