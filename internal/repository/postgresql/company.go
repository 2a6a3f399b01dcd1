package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
)

const companyColumns = `
	id, name, email, password, start_time, end_time,
	accept_lunch, lunch_start_time, lunch_duration_minutes,
	utc_offset_minutes,
	created_at, updated_at`

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Password, &c.StartTime, &c.EndTime,
		&c.AcceptLunch, &c.LunchStartTime, &c.LunchDurationMinutes,
		&c.UTCOffsetMinutes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + companyColumns + `
		FROM companies
		WHERE id = $1
	`

	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

// ListWithEndTime implements company.CompanyRepository.
func (r *companyRepository) ListWithEndTime(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + companyColumns + `
		FROM companies
		WHERE end_time <> ''
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}

	return companies, nil
}

// UpdateSchedule implements company.CompanyRepository.
func (r *companyRepository) UpdateSchedule(ctx context.Context, id string, req company.UpdateScheduleRequest) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies SET
			start_time             = $2,
			end_time               = $3,
			accept_lunch           = $4,
			lunch_start_time       = $5,
			lunch_duration_minutes = $6,
			updated_at             = now()
		WHERE id = $1
		RETURNING` + companyColumns

	c, err := scanCompany(q.QueryRow(ctx, query,
		id,
		req.StartTime,
		req.EndTime,
		req.AcceptLunch,
		req.LunchStartTime,
		req.LunchDurationMinutes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	return c, nil
}
