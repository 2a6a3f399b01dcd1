package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrScheduleNotSet    = errors.New("company has no end time configured")
	ErrInvalidSchedule   = errors.New("invalid company schedule")
	ErrLunchOutsideHours = errors.New("lunch time must be within company work hours")
)
