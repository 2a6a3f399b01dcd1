package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Day-scoped
// methods take the half-open UTC interval [dayStart, dayEnd) produced by the
// clock adapter; they never bucket by the server's local calendar.
//
// Transition methods are single conditional statements matching the expected
// prior state. The boolean result reports whether the guarded write applied;
// false means the precondition no longer held (typically a lost race), and
// the caller maps it back to the typed conflict error. The uniqueness
// constraint on (employee_id, date) is the last line of defense.
type AttendanceRepository interface {
	// GetByEmployeeAndDay returns the day's record, or nil when none exists.
	GetByEmployeeAndDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// ListByEmployeeAndRange returns records with day keys in [from, to),
	// newest first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// Create inserts a new record (future half-day, leave day).
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// SignIn creates the day's record or fills an existing one that has no
	// sign-in yet and is not a leave day.
	SignIn(ctx context.Context, att Attendance) (Attendance, bool, error)

	// SignOut closes an open session.
	SignOut(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, signOut time.Time, totalHours float64) (Attendance, bool, error)

	// StartLunch sets lunch_break_start and the sticky lunch_break_taken
	// flag in one statement, only while signed in with no lunch taken.
	StartLunch(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, at time.Time) (Attendance, bool, error)

	// EndLunch sets lunch_break_end on an open lunch break.
	EndLunch(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, at time.Time) (Attendance, bool, error)

	// MarkHalfDay flips half_day on the day's record, keeping it present and
	// clearing any leave type. Applies only when half_day is still false.
	MarkHalfDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (Attendance, bool, error)

	// MarkLeave creates or updates the day's record as absent with the given
	// leave type. Applies only when the record has no sign-in.
	MarkLeave(ctx context.Context, employeeID, companyID string, day time.Time, leaveType string) (Attendance, bool, error)

	// SetOvertime records overtime hours once per day, never on half days.
	SetOvertime(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, hours float64) (Attendance, bool, error)

	// FindOpenSessions returns the company's records for the day with a
	// sign-in and no sign-out. Already-closed records never match, which is
	// what makes reconciliation idempotent.
	FindOpenSessions(ctx context.Context, companyID string, dayStart, dayEnd time.Time) ([]Attendance, error)

	// CloseSession force-closes one open session by ID, optionally
	// auto-closing a dangling lunch break in the same statement.
	CloseSession(ctx context.Context, id string, signOut time.Time, totalHours float64, lunchEnd *time.Time) (bool, error)
}
