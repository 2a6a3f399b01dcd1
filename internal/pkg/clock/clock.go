package clock

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for civil calendar dates.
const DateLayout = "2006-01-02"

// Clock converts between a company's civil calendar days and absolute UTC
// instants. A company operates in a fixed UTC offset supplied by its
// configuration; nothing in here consults the server's own timezone.
type Clock struct {
	loc *time.Location
}

// New builds a Clock for a fixed UTC offset in minutes (e.g. 330 for +05:30).
func New(offsetMinutes int) Clock {
	sign := "+"
	mins := offsetMinutes
	if mins < 0 {
		sign = "-"
		mins = -mins
	}
	name := fmt.Sprintf("%s%02d:%02d", sign, mins/60, mins%60)
	return Clock{loc: time.FixedZone(name, offsetMinutes*60)}
}

// Location returns the fixed-offset location backing this clock.
func (c Clock) Location() *time.Location {
	return c.loc
}

// LocalMidnightUTC returns the UTC instant of local 00:00:00 on the given
// civil date. This instant is the canonical day key for attendance records.
func (c Clock) LocalMidnightUTC(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc).UTC(), nil
}

// NextLocalMidnightUTC returns LocalMidnightUTC(date) + 24h, the exclusive
// upper bound of the local day.
func (c Clock) NextLocalMidnightUTC(date string) (time.Time, error) {
	start, err := c.LocalMidnightUTC(date)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(24 * time.Hour), nil
}

// DayInterval returns the half-open UTC interval [start, end) covering the
// local day. All day-scoped queries use this interval, never the server's
// local calendar.
func (c Clock) DayInterval(date string) (start, end time.Time, err error) {
	start, err = c.LocalMidnightUTC(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(24 * time.Hour), nil
}

// LocalDate formats an instant as the civil date it falls on in the
// company's offset.
func (c Clock) LocalDate(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// At returns the UTC instant of a local wall time ("HH:mm") on the given
// civil date.
func (c Clock) At(date, hhmm string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	wall, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), wall.Hour(), wall.Minute(), 0, 0, c.loc).UTC(), nil
}

// Midpoint returns the UTC instant halfway between two local wall times on
// the given civil date. The reconciler closes half-day sessions at the
// midpoint of the company's work window.
func (c Clock) Midpoint(date, startHHMM, endHHMM string) (time.Time, error) {
	start, err := c.At(date, startHHMM)
	if err != nil {
		return time.Time{}, err
	}
	end, err := c.At(date, endHHMM)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(end.Sub(start) / 2), nil
}
