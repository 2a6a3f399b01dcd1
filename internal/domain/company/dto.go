package company

import (
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

// ScheduleResponse is the read view of a company's work schedule.
type ScheduleResponse struct {
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	AcceptLunch          bool    `json:"accept_lunch"`
	LunchStartTime       *string `json:"lunch_start_time,omitempty"`
	LunchDurationMinutes *int    `json:"lunch_duration_minutes,omitempty"`
	UTCOffsetMinutes     int     `json:"utc_offset_minutes"`
}

type UpdateScheduleRequest struct {
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	AcceptLunch          bool    `json:"accept_lunch"`
	LunchStartTime       *string `json:"lunch_start_time"`
	LunchDurationMinutes *int    `json:"lunch_duration_minutes"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidHHMM(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm (00:00-23:59) format",
		})
	}
	if !validator.IsValidHHMM(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm (00:00-23:59) format",
		})
	}
	if validator.IsValidHHMM(r.StartTime) && validator.IsValidHHMM(r.EndTime) &&
		validator.HHMMToMinutes(r.EndTime) <= validator.HHMMToMinutes(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if r.AcceptLunch {
		if r.LunchStartTime == nil || !validator.IsValidHHMM(*r.LunchStartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch_start_time",
				Message: "lunch_start_time must be provided in HH:mm format when lunch is accepted",
			})
		}
		if r.LunchDurationMinutes == nil || (*r.LunchDurationMinutes != 30 && *r.LunchDurationMinutes != 60) {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch_duration_minutes",
				Message: "lunch_duration_minutes must be 30 or 60 when lunch is accepted",
			})
		} else if r.LunchStartTime != nil && validator.IsValidHHMM(*r.LunchStartTime) {
			start := validator.HHMMToMinutes(r.StartTime)
			end := validator.HHMMToMinutes(r.EndTime)
			lunchStart := validator.HHMMToMinutes(*r.LunchStartTime)
			if lunchStart < start || lunchStart+*r.LunchDurationMinutes > end {
				errs = append(errs, validator.ValidationError{
					Field:   "lunch_start_time",
					Message: "lunch time must be within company work hours",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
