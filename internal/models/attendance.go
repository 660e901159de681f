package models

import "time"

// AttendanceRecord represents a row in the attendance table, keyed by
// (employee_id, work_date).
type AttendanceRecord struct {
	EmployeeID string    `db:"employee_id"`
	WorkDate   time.Time `db:"work_date"`
	Status     string    `db:"status"`
	AuditFields
}
