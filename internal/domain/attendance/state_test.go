package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDayState(t *testing.T) {
	in := time.Date(2025, 10, 1, 3, 30, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	lunch := in.Add(3 * time.Hour)
	lunchEnd := lunch.Add(30 * time.Minute)
	sick := LeaveSick

	cases := []struct {
		name string
		rec  *Attendance
		want DayState
	}{
		{"no record", nil, StateIdle},
		{"empty record", &Attendance{PresentAbsentStatus: StatusAbsent}, StateIdle},
		{"signed in", &Attendance{SignInTime: &in, PresentAbsentStatus: StatusPresent}, StateSignedIn},
		{"signed out", &Attendance{SignInTime: &in, SignOutTime: &out, PresentAbsentStatus: StatusPresent}, StateSignedOut},
		{
			"on lunch break",
			&Attendance{SignInTime: &in, LunchBreakStart: &lunch, LunchBreakTaken: true, PresentAbsentStatus: StatusPresent},
			StateOnLunchBreak,
		},
		{
			"lunch finished",
			&Attendance{SignInTime: &in, LunchBreakStart: &lunch, LunchBreakEnd: &lunchEnd, LunchBreakTaken: true, PresentAbsentStatus: StatusPresent},
			StateSignedIn,
		},
		{
			"absent on sick leave",
			&Attendance{PresentAbsentStatus: StatusAbsent, LeaveType: &sick},
			StateAbsentOnLeave,
		},
		{
			"future half day not yet signed in",
			&Attendance{HalfDay: true, PresentAbsentStatus: StatusPresent},
			StateIdle,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DeriveDayState(c.rec))
		})
	}
}

func TestDeriveDayState_Pure(t *testing.T) {
	in := time.Date(2025, 10, 1, 3, 30, 0, 0, time.UTC)
	rec := &Attendance{SignInTime: &in, PresentAbsentStatus: StatusPresent}
	assert.Equal(t, DeriveDayState(rec), DeriveDayState(rec))
}
