package employee

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Employee is the read-only directory view the attendance core consumes:
// identity plus monthly leave allowances.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Password  string
	Role      string

	// SickDaysPerMonth is the monthly sick-leave allowance.
	SickDaysPerMonth int

	// HalfDaysPerMonth is the monthly half-day allowance; nil means no cap.
	HalfDaysPerMonth *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComparePassword checks a login candidate against the stored bcrypt hash.
func (e *Employee) ComparePassword(candidate string) bool {
	if e.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(candidate)) == nil
}
