package attendance

// DayState is the complete display state of an employee's workday, derived
// from the persisted record alone. Collaborators use this single derivation
// instead of recomputing ad hoc booleans per call site.
type DayState string

const (
	StateIdle          DayState = "idle"
	StateSignedIn      DayState = "signedIn"
	StateOnLunchBreak  DayState = "onLunchBreak"
	StateSignedOut     DayState = "signedOut"
	StateAbsentOnLeave DayState = "absentOnLeave"
)

// DeriveDayState maps a record (nil = no record for the day) to its display
// state. An open lunch break surfaces as OnLunchBreak even though the
// underlying record stays signed in.
func DeriveDayState(a *Attendance) DayState {
	switch {
	case a == nil:
		return StateIdle
	case a.PresentAbsentStatus == StatusAbsent && a.LeaveType != nil:
		return StateAbsentOnLeave
	case a.SignOutTime != nil:
		return StateSignedOut
	case a.SignInTime == nil:
		return StateIdle
	case a.IsOnLunchBreak():
		return StateOnLunchBreak
	default:
		return StateSignedIn
	}
}
