package attendance

import (
	"time"

	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Wire values accepted for work location.
const (
	wireLocationHome   = "WFH"
	wireLocationOffice = "WFO"
)

type SignInRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	HalfDay  bool   `json:"half_day"`
}

func (r *SignInRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Location != wireLocationHome && r.Location != wireLocationOffice {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must be WFH or WFO",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WorkLocation maps the wire value to the stored enum.
func (r *SignInRequest) WorkLocation() string {
	if r.Location == wireLocationHome {
		return LocationHome
	}
	return LocationOffice
}

type SignOutRequest struct {
	Date string `json:"date"`

	// Hours is a client-computed hint only. The stored total is always
	// recomputed server-side.
	Hours *float64 `json:"hours,omitempty"`
}

func (r *SignOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LunchBreakRequest struct {
	Date string `json:"date"`
}

func (r *LunchBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HalfDayRequest struct {
	Date string `json:"date"`
}

func (r *HalfDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeRequest struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

func (r *OvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Hours <= 0 || r.Hours > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

func (r *LeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Type != LeaveSick {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be sick",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayStatusResponse is the current-day attendance view exposed to clients.
type DayStatusResponse struct {
	Status              DayState   `json:"status"`
	SignInTime          *time.Time `json:"sign_in_time,omitempty"`
	SignOutTime         *time.Time `json:"sign_out_time,omitempty"`
	Location            string     `json:"location,omitempty"`
	PresentAbsentStatus string     `json:"present_absent_status,omitempty"`
	LeaveType           *string    `json:"leave_type,omitempty"`
	OvertimeHours       float64    `json:"overtime_hours"`
	TotalHoursWorked    float64    `json:"total_hours_worked"`
	HalfDay             bool       `json:"half_day"`
	LunchBreakStart     *time.Time `json:"lunch_break_start,omitempty"`
	LunchBreakEnd       *time.Time `json:"lunch_break_end,omitempty"`
	LunchBreakTaken     bool       `json:"lunch_break_taken"`
}

// ReconciliationReport summarizes one auto sign-out batch run.
type ReconciliationReport struct {
	ProcessedCompanies     int       `json:"processed_companies"`
	AutoSignedOutEmployees int       `json:"auto_signed_out_employees"`
	Errors                 []string  `json:"errors"`
	Timestamp              time.Time `json:"timestamp"`
}
