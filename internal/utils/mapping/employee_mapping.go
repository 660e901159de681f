package mapping

import (
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:        d.EmployeeID,
		Name:              d.Name,
		EmployeeType:      string(d.EmployeeType),
		BaseMonthlySalary: d.BaseMonthlySalary,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:        m.EmployeeID,
		Name:              m.Name,
		EmployeeType:      domain.EmployeeType(m.EmployeeType),
		BaseMonthlySalary: m.BaseMonthlySalary,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}

// ToDomainAttendanceRecord converts a model AttendanceRecord to a domain AttendanceRecord
func ToDomainAttendanceRecord(m models.AttendanceRecord) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		EmployeeID:  m.EmployeeID,
		WorkDate:    m.WorkDate,
		Status:      domain.AttendanceStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAttendanceSlice converts a slice of model AttendanceRecords to domain records
func ToDomainAttendanceSlice(ms []models.AttendanceRecord) []domain.AttendanceRecord {
	ds := make([]domain.AttendanceRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendanceRecord(m)
	}
	return ds
}
