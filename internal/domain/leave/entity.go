package leave

import (
	"time"
)

// PeriodLayout formats the monthly quota period key, e.g. "2025-10".
const PeriodLayout = "2006-01"

// Quota holds the per-employee taken-counters for one monthly period.
// The (employee, period) pair is unique, so allowances reset naturally at
// month boundaries and increments stay idempotent within a month's row.
type Quota struct {
	ID            string
	EmployeeID    string
	Period        string
	SickLeaves    int
	HalfDayLeaves int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining computes a balance from an allowance and a taken-counter,
// floored at zero.
func Remaining(allowance, taken int) int {
	if remaining := allowance - taken; remaining > 0 {
		return remaining
	}
	return 0
}

// Balance is the remaining-quota view for the current period.
type Balance struct {
	Period           string `json:"period"`
	SickTaken        int    `json:"sick_taken"`
	SickRemaining    int    `json:"sick_remaining"`
	HalfDayTaken     int    `json:"half_day_taken"`
	HalfDayRemaining *int   `json:"half_day_remaining,omitempty"` // nil = no cap
}
