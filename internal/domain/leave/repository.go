package leave

import (
	"context"
)

// QuotaRepository stores the per-employee monthly taken-counters.
type QuotaRepository interface {
	// GetForPeriod returns the period's counters, or nil when the employee
	// has taken nothing yet this period.
	GetForPeriod(ctx context.Context, employeeID, period string) (*Quota, error)

	// ConsumeSick atomically increments the sick counter while it is still
	// below the allowance. Returns false when the quota is exhausted.
	ConsumeSick(ctx context.Context, employeeID, period string, allowance int) (bool, error)

	// ConsumeHalfDay atomically increments the half-day counter. A nil
	// allowance means no cap.
	ConsumeHalfDay(ctx context.Context, employeeID, period string, allowance *int) (bool, error)
}

// QuotaService is the leave & quota tracker consumed by the state machine
// and the balance endpoint.
type QuotaService interface {
	// Balance returns the caller's remaining balances for the period.
	Balance(ctx context.Context, period string) (Balance, error)

	// ConsumeSick validates and decrements the caller's sick balance. Runs
	// in the surrounding transaction when the context carries one.
	ConsumeSick(ctx context.Context, employeeID, period string) error

	// ConsumeHalfDay validates and decrements the caller's half-day balance.
	ConsumeHalfDay(ctx context.Context, employeeID, period string) error
}
