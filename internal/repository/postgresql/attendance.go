package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
)

// attendanceColumns is the canonical select/returning list shared by every
// query in this file so scanAttendance stays in sync.
const attendanceColumns = `
	id, employee_id, company_id, date,
	sign_in_time, sign_out_time,
	lunch_break_start, lunch_break_end, lunch_break_taken,
	present_absent_status, half_day, work_location, leave_type,
	overtime_hours, total_hours_worked,
	created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date,
		&att.SignInTime, &att.SignOutTime,
		&att.LunchBreakStart, &att.LunchBreakEnd, &att.LunchBreakTaken,
		&att.PresentAbsentStatus, &att.HalfDay, &att.WorkLocation, &att.LeaveType,
		&att.OvertimeHours, &att.TotalHoursWorked,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByEmployeeAndDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, date,
			sign_in_time, sign_out_time,
			lunch_break_start, lunch_break_end, lunch_break_taken,
			present_absent_status, half_day, work_location, leave_type,
			overtime_hours, total_hours_worked
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CompanyID,
		att.Date,
		att.SignInTime,
		att.SignOutTime,
		att.LunchBreakStart,
		att.LunchBreakEnd,
		att.LunchBreakTaken,
		att.PresentAbsentStatus,
		att.HalfDay,
		att.WorkLocation,
		att.LeaveType,
		att.OvertimeHours,
		att.TotalHoursWorked,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// SignIn implements attendance.AttendanceRepository.
//
// A single upsert covers both shapes of the day: no record yet, or a
// pre-created record (future half-day) that has no sign-in. The conditional
// DO UPDATE leaves already-signed-in and leave-day rows untouched, in which
// case RETURNING produces no row and applied comes back false.
func (a *attendanceRepository) SignIn(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, date, sign_in_time,
			present_absent_status, half_day, work_location
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			sign_in_time          = EXCLUDED.sign_in_time,
			present_absent_status = EXCLUDED.present_absent_status,
			half_day              = attendances.half_day OR EXCLUDED.half_day,
			work_location         = EXCLUDED.work_location,
			updated_at            = now()
		WHERE attendances.sign_in_time IS NULL
		  AND attendances.leave_type IS NULL
		RETURNING` + attendanceColumns

	signed, err := scanAttendance(q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CompanyID,
		att.Date,
		att.SignInTime,
		attendance.StatusPresent,
		att.HalfDay,
		att.WorkLocation,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to sign in: %w", err)
	}

	return signed, true, nil
}

// SignOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SignOut(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, signOut time.Time, totalHours float64) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			sign_out_time      = $4,
			total_hours_worked = $5,
			updated_at         = now()
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND sign_in_time IS NOT NULL
		  AND sign_out_time IS NULL
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, signOut, totalHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to sign out: %w", err)
	}

	return att, true, nil
}

// StartLunch implements attendance.AttendanceRepository.
func (a *attendanceRepository) StartLunch(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, at time.Time) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			lunch_break_start = $4,
			lunch_break_taken = TRUE,
			updated_at        = now()
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND sign_in_time IS NOT NULL
		  AND sign_out_time IS NULL
		  AND lunch_break_taken = FALSE
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to start lunch break: %w", err)
	}

	return att, true, nil
}

// EndLunch implements attendance.AttendanceRepository.
func (a *attendanceRepository) EndLunch(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, at time.Time) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			lunch_break_end = $4,
			updated_at      = now()
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND lunch_break_start IS NOT NULL
		  AND lunch_break_end IS NULL
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to end lunch break: %w", err)
	}

	return att, true, nil
}

// MarkHalfDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkHalfDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			half_day              = TRUE,
			present_absent_status = $4,
			leave_type            = NULL,
			updated_at            = now()
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND half_day = FALSE
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, attendance.StatusPresent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to mark half day: %w", err)
	}

	return att, true, nil
}

// MarkLeave implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkLeave(ctx context.Context, employeeID, companyID string, day time.Time, leaveType string) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, date, present_absent_status, leave_type
		) VALUES (
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			present_absent_status = EXCLUDED.present_absent_status,
			leave_type            = EXCLUDED.leave_type,
			updated_at            = now()
		WHERE attendances.sign_in_time IS NULL
		  AND attendances.half_day = FALSE
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, companyID, day, attendance.StatusAbsent, leaveType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to mark leave: %w", err)
	}

	return att, true, nil
}

// SetOvertime implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetOvertime(ctx context.Context, employeeID string, dayStart, dayEnd time.Time, hours float64) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			overtime_hours = $4,
			updated_at     = now()
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND half_day = FALSE
		  AND overtime_hours = 0
		RETURNING` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, hours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to set overtime: %w", err)
	}

	return att, true, nil
}

// FindOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindOpenSessions(ctx context.Context, companyID string, dayStart, dayEnd time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE company_id = $1
		  AND date >= $2
		  AND date < $3
		  AND sign_in_time IS NOT NULL
		  AND sign_out_time IS NULL
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to find open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		sessions = append(sessions, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open sessions: %w", err)
	}

	return sessions, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, signOut time.Time, totalHours float64, lunchEnd *time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			sign_out_time      = $2,
			total_hours_worked = $3,
			lunch_break_end    = COALESCE($4, lunch_break_end),
			updated_at         = now()
		WHERE id = $1
		  AND sign_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, id, signOut, totalHours, lunchEnd)
	if err != nil {
		return false, fmt.Errorf("failed to close session: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
