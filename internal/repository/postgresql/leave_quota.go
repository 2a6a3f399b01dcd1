package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
)

type leaveQuotaRepository struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.QuotaRepository {
	return &leaveQuotaRepository{db: db}
}

// GetForPeriod implements leave.QuotaRepository.
func (l *leaveQuotaRepository) GetForPeriod(ctx context.Context, employeeID, period string) (*leave.Quota, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, period, sick_leaves, half_day_leaves, created_at, updated_at
		FROM leave_quotas
		WHERE employee_id = $1
		  AND period = $2
	`

	var quota leave.Quota
	err := q.QueryRow(ctx, query, employeeID, period).Scan(
		&quota.ID, &quota.EmployeeID, &quota.Period,
		&quota.SickLeaves, &quota.HalfDayLeaves,
		&quota.CreatedAt, &quota.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave quota: %w", err)
	}

	return &quota, nil
}

// ConsumeSick implements leave.QuotaRepository.
//
// The counter row is created on first use and incremented conditionally, so
// the allowance check and the increment are one atomic statement. When the
// counter already sits at the allowance the DO UPDATE filter rejects the
// write and applied comes back false.
func (l *leaveQuotaRepository) ConsumeSick(ctx context.Context, employeeID, period string, allowance int) (bool, error) {
	if allowance <= 0 {
		return false, nil
	}

	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_quotas (employee_id, period, sick_leaves, half_day_leaves)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (employee_id, period) DO UPDATE SET
			sick_leaves = leave_quotas.sick_leaves + 1,
			updated_at  = now()
		WHERE leave_quotas.sick_leaves < $3
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, employeeID, period, allowance).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume sick leave: %w", err)
	}

	return true, nil
}

// ConsumeHalfDay implements leave.QuotaRepository.
func (l *leaveQuotaRepository) ConsumeHalfDay(ctx context.Context, employeeID, period string, allowance *int) (bool, error) {
	q := GetQuerier(ctx, l.db)

	// No cap configured: the increment always applies.
	if allowance == nil {
		query := `
			INSERT INTO leave_quotas (employee_id, period, sick_leaves, half_day_leaves)
			VALUES ($1, $2, 0, 1)
			ON CONFLICT (employee_id, period) DO UPDATE SET
				half_day_leaves = leave_quotas.half_day_leaves + 1,
				updated_at      = now()
			RETURNING id
		`
		var id string
		if err := q.QueryRow(ctx, query, employeeID, period).Scan(&id); err != nil {
			return false, fmt.Errorf("failed to consume half day: %w", err)
		}
		return true, nil
	}

	if *allowance <= 0 {
		return false, nil
	}

	query := `
		INSERT INTO leave_quotas (employee_id, period, sick_leaves, half_day_leaves)
		VALUES ($1, $2, 0, 1)
		ON CONFLICT (employee_id, period) DO UPDATE SET
			half_day_leaves = leave_quotas.half_day_leaves + 1,
			updated_at      = now()
		WHERE leave_quotas.half_day_leaves < $3
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, employeeID, period, *allowance).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume half day: %w", err)
	}

	return true, nil
}
