package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2025-10-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestComputeWorkedHours(t *testing.T) {
	cases := []struct {
		name       string
		signIn     *time.Time
		signOut    *time.Time
		halfDay    bool
		lunchMins  int
		lunchTaken bool
		want       float64
	}{
		{"no sign in", nil, at("17:00"), false, 0, false, 0},
		{"no sign out", at("09:00"), nil, false, 0, false, 0},
		{"full day", at("09:00"), at("17:00"), false, 0, false, 8.00},
		{"half day derives sign out", at("09:00"), nil, true, 0, false, 4.00},
		{"half day with explicit sign out", at("09:00"), at("12:00"), true, 0, false, 3.00},
		{"lunch subtracted", at("09:00"), at("17:00"), false, 30, true, 7.50},
		{"hour lunch subtracted", at("09:00"), at("18:00"), false, 60, true, 8.00},
		{"lunch configured but not taken", at("09:00"), at("17:00"), false, 30, false, 8.00},
		{"sign out before sign in floors to zero", at("17:00"), at("09:00"), false, 0, false, 0},
		{"lunch exceeding base floors to zero", at("09:00"), at("09:15"), false, 30, true, 0},
		{"rounded to 2 decimals", at("09:00"), at("17:10"), false, 0, false, 8.17},
		{"clamped to 24", at("09:00"), func() *time.Time { t := at("09:00").Add(30 * time.Hour); return &t }(), false, 0, false, 24},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeWorkedHours(c.signIn, c.signOut, c.halfDay, c.lunchMins, c.lunchTaken)
			assert.InDelta(t, c.want, got, 0.0001)
		})
	}
}

func TestComputeWorkedHours_Pure(t *testing.T) {
	in, out := at("09:00"), at("17:00")
	first := ComputeWorkedHours(in, out, false, 30, true)
	second := ComputeWorkedHours(in, out, false, 30, true)
	assert.Equal(t, first, second)
	assert.Equal(t, *at("09:00"), *in, "inputs must not be mutated")
}

func TestDerivedSignOut(t *testing.T) {
	in := at("09:00")

	derived := DerivedSignOut(in, nil, true)
	assert.NotNil(t, derived)
	assert.Equal(t, *at("13:00"), *derived)

	explicit := at("12:00")
	assert.Equal(t, explicit, DerivedSignOut(in, explicit, true))

	assert.Nil(t, DerivedSignOut(in, nil, false))
	assert.Nil(t, DerivedSignOut(nil, nil, true))
}
