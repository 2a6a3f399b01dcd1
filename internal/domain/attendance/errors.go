package attendance

import "errors"

// Attendance domain errors
var (
	// Sign-in errors
	ErrAlreadySignedIn     = errors.New("already signed in")
	ErrOutsideSignInWindow = errors.New("sign-in attempted outside the allowed time range")
	ErrSignInOnLeaveDay    = errors.New("cannot sign in on a leave day")

	// Sign-out errors
	ErrNotSignedIn      = errors.New("not signed in")
	ErrAlreadySignedOut = errors.New("already signed out")

	// Lunch break errors
	ErrLunchNotAccepted  = errors.New("lunch breaks are not enabled for this company")
	ErrLunchAlreadyTaken = errors.New("lunch break already taken today")
	ErrNotOnLunchBreak   = errors.New("no lunch break in progress")

	// Half-day errors
	ErrHalfDayAlreadyExists    = errors.New("attendance already exists for this date")
	ErrHalfDayAlreadyRequested = errors.New("half day already requested for today")

	// Leave errors
	ErrAlreadyMarkedPresent = errors.New("day is already marked present")

	// Overtime errors
	ErrOvertimeAlreadySubmitted = errors.New("overtime already submitted for this date")
	ErrOvertimeOnHalfDay        = errors.New("overtime is not allowed on a half day")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
