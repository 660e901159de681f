package domain

import "time"

// AttendanceStatus records presence on a single calendar day.
type AttendanceStatus string

const (
	Present AttendanceStatus = "PRESENT"
	Absent  AttendanceStatus = "ABSENT"
)

// AttendanceRecord is one (employee, date) attendance mark. The payroll
// clerk may overwrite a day before the salary run, so writes are upserts.
// A day with no record at all counts as Absent in the accrual calculation.
type AttendanceRecord struct {
	EmployeeID string           `json:"employeeID"` // PK part
	WorkDate   time.Time        `json:"workDate"`   // PK part, date precision
	Status     AttendanceStatus `json:"status"`
	AuditFields
}
