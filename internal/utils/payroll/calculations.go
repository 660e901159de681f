package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProratedSalary converts attendance into a salary amount for one month:
// round(baseSalary / daysInMonth * presentDays, 2). daysInMonth must be the
// actual calendar day count for the month being paid (28-31), supplied
// explicitly so the calculation never embeds calendar assumptions.
func ProratedSalary(baseSalary decimal.Decimal, daysInMonth int, presentDays int) (decimal.Decimal, error) {
	if daysInMonth < 28 || daysInMonth > 31 {
		return decimal.Zero, fmt.Errorf("daysInMonth must be a calendar day count (28-31), got %d", daysInMonth)
	}
	if presentDays < 0 || presentDays > daysInMonth {
		return decimal.Zero, fmt.Errorf("presentDays %d out of range for a %d-day month", presentDays, daysInMonth)
	}

	perDayRate := baseSalary.Div(decimal.NewFromInt(int64(daysInMonth)))
	return perDayRate.Mul(decimal.NewFromInt(int64(presentDays))).Round(2), nil
}

// DaysInMonth returns the calendar day count for (year, month).
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
