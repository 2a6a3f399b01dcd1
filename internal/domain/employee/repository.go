package employee

import (
	"context"
)

// EmployeeRepository is the read-only employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail resolves a login credential; includes the password hash.
	GetByEmail(ctx context.Context, email string) (Employee, error)
}
