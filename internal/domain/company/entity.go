package company

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Company holds the schedule configuration that drives the sign-in window,
// the auto sign-out deadline, and lunch scheduling. Times are civil "HH:mm"
// strings in the company's own offset.
type Company struct {
	ID        string
	Name      string
	Email     string
	Password  string
	StartTime string
	EndTime   string

	AcceptLunch          bool
	LunchStartTime       *string
	LunchDurationMinutes *int

	// UTCOffsetMinutes is the company's fixed civil offset, e.g. 330 for
	// +05:30. It is configuration, never the server's local zone.
	UTCOffsetMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComparePassword checks a login candidate against the stored bcrypt hash.
func (c *Company) ComparePassword(candidate string) bool {
	if c.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(candidate)) == nil
}

// LunchMinutes returns the configured lunch duration, or 0 when lunch is
// disabled or unconfigured.
func (c *Company) LunchMinutes() int {
	if !c.AcceptLunch || c.LunchDurationMinutes == nil {
		return 0
	}
	return *c.LunchDurationMinutes
}
