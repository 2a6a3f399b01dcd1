package attendance

import (
	"math"
	"time"
)

// HalfDayDuration is the default length of a half-day session when no
// explicit sign-out was supplied.
const HalfDayDuration = 4 * time.Hour

// DerivedSignOut resolves the sign-out instant used for accounting. When a
// half-day record has a sign-in but no sign-out, the session is deemed to
// end HalfDayDuration after sign-in. Returns nil when no instant can be
// derived yet.
func DerivedSignOut(signIn, signOut *time.Time, halfDay bool) *time.Time {
	if signOut != nil {
		return signOut
	}
	if halfDay && signIn != nil {
		t := signIn.Add(HalfDayDuration)
		return &t
	}
	return nil
}

// ComputeWorkedHours computes the authoritative total for a day from its
// timestamps. It is pure: the interactive sign-out path and the auto
// sign-out reconciler call it with identical inputs and get identical
// totals.
//
// Rules: missing sign-in or underivable sign-out yields 0; the base is the
// elapsed time in hours, floored at 0 and rounded to 2 decimals; a taken
// lunch subtracts its configured duration, floored at 0; the result is
// clamped to [0, 24].
func ComputeWorkedHours(signIn, signOut *time.Time, halfDay bool, lunchDurationMinutes int, lunchTaken bool) float64 {
	if signIn == nil {
		return 0
	}
	out := DerivedSignOut(signIn, signOut, halfDay)
	if out == nil {
		return 0
	}

	hours := out.Sub(*signIn).Hours()
	if hours < 0 {
		hours = 0
	}
	hours = round2(hours)

	if lunchTaken && lunchDurationMinutes > 0 {
		hours -= float64(lunchDurationMinutes) / 60
		if hours < 0 {
			hours = 0
		}
	}

	if hours > 24 {
		hours = 24
	}
	return round2(hours)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
