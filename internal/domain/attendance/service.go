package attendance

import (
	"context"
)

// AttendanceService is the attendance state machine. Every transition is
// validated against the persisted record, never against client-supplied
// state, and returns a typed domain error for expected rule violations.
type AttendanceService interface {
	// GetDayStatus returns the derived display state for one local day.
	GetDayStatus(ctx context.Context, date string) (DayStatusResponse, error)

	// SignIn opens the day's session.
	SignIn(ctx context.Context, req SignInRequest) (DayStatusResponse, error)

	// SignOut closes the day's session, recomputing hours server-side.
	SignOut(ctx context.Context, req SignOutRequest) (DayStatusResponse, error)

	// StartLunchBreak begins the single lunch break of the day.
	StartLunchBreak(ctx context.Context, req LunchBreakRequest) (DayStatusResponse, error)

	// EndLunchBreak closes an open lunch break.
	EndLunchBreak(ctx context.Context, req LunchBreakRequest) (DayStatusResponse, error)

	// RequestHalfDay marks today's open session as a half day, or books a
	// future half-day record.
	RequestHalfDay(ctx context.Context, req HalfDayRequest) (DayStatusResponse, error)

	// SubmitOvertime records overtime hours, once per day.
	SubmitOvertime(ctx context.Context, req OvertimeRequest) (DayStatusResponse, error)

	// RequestLeave books a sick-leave day and consumes quota atomically.
	RequestLeave(ctx context.Context, req LeaveRequest) (DayStatusResponse, error)
}
