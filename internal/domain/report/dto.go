package report

import (
	"context"
	"time"

	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

type RangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.Start)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.End)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must not be before start",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayReport is one calendar day in a range report. Days without a stored
// record are reported as absent; no record is created retroactively.
type DayReport struct {
	Date             string     `json:"date"`
	Status           string     `json:"status"`
	SignInTime       *time.Time `json:"sign_in_time,omitempty"`
	SignOutTime      *time.Time `json:"sign_out_time,omitempty"`
	TotalHoursWorked float64    `json:"total_hours_worked"`
	OvertimeHours    float64    `json:"overtime_hours"`
	HalfDay          bool       `json:"half_day"`
	LeaveType        *string    `json:"leave_type,omitempty"`
}

type RangeSummary struct {
	PresentDays   int     `json:"present_days"`
	AbsentDays    int     `json:"absent_days"`
	HalfDays      int     `json:"half_days"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type RangeResponse struct {
	Days    []DayReport  `json:"days"`
	Summary RangeSummary `json:"summary"`
}

// ReportService aggregates an employee's attendance over a date range.
type ReportService interface {
	AttendanceRange(ctx context.Context, req RangeRequest) (RangeResponse, error)
}
