package attendance

import (
	"time"
)

// Work location, set at sign-in and immutable afterwards.
const (
	LocationHome   = "work_from_home"
	LocationOffice = "work_from_office"
)

// Present/absent status values.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Leave types.
const (
	LeaveSick  = "sick"
	LeaveHalf  = "half"
	LeaveOther = "other"
)

// Attendance is the single record for one employee on one local calendar
// day. Date holds the UTC instant of local midnight and, together with
// EmployeeID, is covered by a uniqueness constraint.
type Attendance struct {
	ID                  string
	EmployeeID          string
	CompanyID           string
	Date                time.Time
	SignInTime          *time.Time
	SignOutTime         *time.Time
	LunchBreakStart     *time.Time
	LunchBreakEnd       *time.Time
	LunchBreakTaken     bool
	PresentAbsentStatus string
	HalfDay             bool
	WorkLocation        string
	LeaveType           *string
	OvertimeHours       float64
	TotalHoursWorked    float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsSignedIn reports an open session: signed in, not yet signed out.
func (a *Attendance) IsSignedIn() bool {
	return a.SignInTime != nil && a.SignOutTime == nil
}

// IsOnLunchBreak reports a started but not yet ended lunch break.
func (a *Attendance) IsOnLunchBreak() bool {
	return a.LunchBreakStart != nil && a.LunchBreakEnd == nil
}
