package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
	"github.com/opticalspaces/attendance-backend-go/internal/repository/postgresql"
)

// SignInGraceBefore is how early an employee may sign in ahead of the
// company's start time.
const SignInGraceBefore = 30 * time.Minute

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	company.CompanyRepository
	quotaService leave.QuotaService
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
	quotaService leave.QuotaService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		CompanyRepository:    companyRepo,
		quotaService:         quotaService,
	}
}

// dayScope bundles everything a transition needs to address one local day:
// the authenticated caller, their company's schedule, the company clock and
// the half-open UTC interval covering the date.
type dayScope struct {
	ident    jwt.Identity
	comp     company.Company
	clk      clock.Clock
	dayStart time.Time
	dayEnd   time.Time
}

func (a *AttendanceServiceImpl) scopeFor(ctx context.Context, date string) (dayScope, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return dayScope{}, err
	}

	comp, err := a.CompanyRepository.GetByID(ctx, ident.CompanyID)
	if err != nil {
		return dayScope{}, fmt.Errorf("failed to get company: %w", err)
	}

	clk := clock.New(comp.UTCOffsetMinutes)
	dayStart, dayEnd, err := clk.DayInterval(date)
	if err != nil {
		return dayScope{}, err
	}

	return dayScope{ident: ident, comp: comp, clk: clk, dayStart: dayStart, dayEnd: dayEnd}, nil
}

func dayStatus(rec *attendance.Attendance) attendance.DayStatusResponse {
	resp := attendance.DayStatusResponse{Status: attendance.DeriveDayState(rec)}
	if rec == nil {
		return resp
	}

	resp.SignInTime = rec.SignInTime
	resp.SignOutTime = rec.SignOutTime
	resp.Location = rec.WorkLocation
	resp.PresentAbsentStatus = rec.PresentAbsentStatus
	resp.LeaveType = rec.LeaveType
	resp.OvertimeHours = rec.OvertimeHours
	resp.TotalHoursWorked = rec.TotalHoursWorked
	resp.HalfDay = rec.HalfDay
	resp.LunchBreakStart = rec.LunchBreakStart
	resp.LunchBreakEnd = rec.LunchBreakEnd
	resp.LunchBreakTaken = rec.LunchBreakTaken
	return resp
}

func periodOf(date string) string {
	d, _ := time.Parse(clock.DateLayout, date)
	return d.Format(leave.PeriodLayout)
}

// GetDayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDayStatus(ctx context.Context, date string) (attendance.DayStatusResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.DayStatusResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		}
	}

	scope, err := a.scopeFor(ctx, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	return dayStatus(rec), nil
}

// SignIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SignIn(ctx context.Context, req attendance.SignInRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	now := time.Now().UTC()

	windowStart, err := scope.clk.At(req.Date, scope.comp.StartTime)
	if err != nil {
		return attendance.DayStatusResponse{}, company.ErrScheduleNotSet
	}
	windowEnd, err := scope.clk.At(req.Date, scope.comp.EndTime)
	if err != nil {
		return attendance.DayStatusResponse{}, company.ErrScheduleNotSet
	}
	if now.Before(windowStart.Add(-SignInGraceBefore)) || now.After(windowEnd) {
		return attendance.DayStatusResponse{}, attendance.ErrOutsideSignInWindow
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec != nil {
		if rec.SignInTime != nil {
			return attendance.DayStatusResponse{}, attendance.ErrAlreadySignedIn
		}
		if rec.LeaveType != nil {
			return attendance.DayStatusResponse{}, attendance.ErrSignInOnLeaveDay
		}
	}

	signed, applied, err := a.AttendanceRepository.SignIn(ctx, attendance.Attendance{
		EmployeeID:   scope.ident.EmployeeID,
		CompanyID:    scope.ident.CompanyID,
		Date:         scope.dayStart,
		SignInTime:   &now,
		WorkLocation: req.WorkLocation(),
		HalfDay:      req.HalfDay,
	})
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !applied {
		// Lost a race since the read above. Re-read to tell the two
		// conflicts apart.
		cur, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
		if err == nil && cur != nil && cur.LeaveType != nil {
			return attendance.DayStatusResponse{}, attendance.ErrSignInOnLeaveDay
		}
		return attendance.DayStatusResponse{}, attendance.ErrAlreadySignedIn
	}

	return dayStatus(&signed), nil
}

// SignOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SignOut(ctx context.Context, req attendance.SignOutRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	now := time.Now().UTC()

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec == nil || rec.SignInTime == nil {
		return attendance.DayStatusResponse{}, attendance.ErrNotSignedIn
	}
	if rec.SignOutTime != nil {
		return attendance.DayStatusResponse{}, attendance.ErrAlreadySignedOut
	}

	lunchComplete := rec.LunchBreakStart != nil && rec.LunchBreakEnd != nil
	total := ComputeWorkedHours(rec.SignInTime, &now, rec.HalfDay, scope.comp.LunchMinutes(), lunchComplete)
	if req.Hours != nil && *req.Hours != total {
		slog.Debug("ignoring client-computed hours",
			"employee_id", scope.ident.EmployeeID,
			"client_hours", *req.Hours,
			"server_hours", total,
		)
	}

	closed, applied, err := a.AttendanceRepository.SignOut(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd, now, total)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !applied {
		return attendance.DayStatusResponse{}, attendance.ErrAlreadySignedOut
	}

	return dayStatus(&closed), nil
}

// StartLunchBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartLunchBreak(ctx context.Context, req attendance.LunchBreakRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !scope.comp.AcceptLunch {
		return attendance.DayStatusResponse{}, attendance.ErrLunchNotAccepted
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec == nil || !rec.IsSignedIn() {
		return attendance.DayStatusResponse{}, attendance.ErrNotSignedIn
	}
	if rec.LunchBreakTaken {
		return attendance.DayStatusResponse{}, attendance.ErrLunchAlreadyTaken
	}

	updated, applied, err := a.AttendanceRepository.StartLunch(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd, time.Now().UTC())
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !applied {
		return attendance.DayStatusResponse{}, attendance.ErrLunchAlreadyTaken
	}

	return dayStatus(&updated), nil
}

// EndLunchBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndLunchBreak(ctx context.Context, req attendance.LunchBreakRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec == nil || !rec.IsOnLunchBreak() {
		return attendance.DayStatusResponse{}, attendance.ErrNotOnLunchBreak
	}

	updated, applied, err := a.AttendanceRepository.EndLunch(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd, time.Now().UTC())
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !applied {
		return attendance.DayStatusResponse{}, attendance.ErrNotOnLunchBreak
	}

	return dayStatus(&updated), nil
}

// RequestHalfDay implements attendance.AttendanceService.
//
// Two shapes: marking today's open session as a half day (which closes it
// four hours after sign-in), or booking a half-day record for today or a
// future date before any sign-in. Both consume half-day quota inside the
// same transaction as the record write.
func (a *AttendanceServiceImpl) RequestHalfDay(ctx context.Context, req attendance.HalfDayRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	now := time.Now().UTC()
	today := scope.clk.LocalDate(now)
	period := periodOf(req.Date)

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	if rec != nil {
		if rec.HalfDay {
			if req.Date == today {
				return attendance.DayStatusResponse{}, attendance.ErrHalfDayAlreadyRequested
			}
			return attendance.DayStatusResponse{}, attendance.ErrHalfDayAlreadyExists
		}
		if req.Date != today || rec.SignInTime == nil {
			return attendance.DayStatusResponse{}, attendance.ErrHalfDayAlreadyExists
		}

		var marked attendance.Attendance
		err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			if err := a.quotaService.ConsumeHalfDay(txCtx, scope.ident.EmployeeID, period); err != nil {
				return err
			}

			var applied bool
			marked, applied, err = a.AttendanceRepository.MarkHalfDay(txCtx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
			if err != nil {
				return err
			}
			if !applied {
				return attendance.ErrHalfDayAlreadyRequested
			}

			// A half-day session ends four hours after sign-in; close it
			// now so the total is settled immediately.
			if marked.IsSignedIn() {
				out := DerivedSignOut(marked.SignInTime, nil, true)
				lunchComplete := marked.LunchBreakStart != nil && marked.LunchBreakEnd != nil
				total := ComputeWorkedHours(marked.SignInTime, out, true, scope.comp.LunchMinutes(), lunchComplete)
				if _, err := a.AttendanceRepository.CloseSession(txCtx, marked.ID, *out, total, nil); err != nil {
					return err
				}
				marked.SignOutTime = out
				marked.TotalHoursWorked = total
			}
			return nil
		})
		if err != nil {
			return attendance.DayStatusResponse{}, err
		}

		return dayStatus(&marked), nil
	}

	if req.Date < today {
		return attendance.DayStatusResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be today or a future date"},
		}
	}

	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.quotaService.ConsumeHalfDay(txCtx, scope.ident.EmployeeID, period); err != nil {
			return err
		}

		created, err = a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID:          scope.ident.EmployeeID,
			CompanyID:           scope.ident.CompanyID,
			Date:                scope.dayStart,
			PresentAbsentStatus: attendance.StatusPresent,
			HalfDay:             true,
		})
		return err
	})
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	return dayStatus(&created), nil
}

// SubmitOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitOvertime(ctx context.Context, req attendance.OvertimeRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec == nil {
		return attendance.DayStatusResponse{}, attendance.ErrAttendanceNotFound
	}
	if rec.HalfDay {
		return attendance.DayStatusResponse{}, attendance.ErrOvertimeOnHalfDay
	}
	if rec.OvertimeHours > 0 {
		return attendance.DayStatusResponse{}, attendance.ErrOvertimeAlreadySubmitted
	}

	updated, applied, err := a.AttendanceRepository.SetOvertime(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd, req.Hours)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if !applied {
		return attendance.DayStatusResponse{}, attendance.ErrOvertimeAlreadySubmitted
	}

	return dayStatus(&updated), nil
}

// RequestLeave implements attendance.AttendanceService.
//
// The quota decrement and the record write share one transaction: a sick
// day either consumes quota and books the day, or does neither.
func (a *AttendanceServiceImpl) RequestLeave(ctx context.Context, req attendance.LeaveRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	scope, err := a.scopeFor(ctx, req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	today := scope.clk.LocalDate(time.Now().UTC())
	if req.Date < today {
		return attendance.DayStatusResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be today or a future date"},
		}
	}

	rec, err := a.AttendanceRepository.GetByEmployeeAndDay(ctx, scope.ident.EmployeeID, scope.dayStart, scope.dayEnd)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	if rec != nil && (rec.SignInTime != nil || rec.HalfDay) {
		return attendance.DayStatusResponse{}, attendance.ErrAlreadyMarkedPresent
	}

	period := periodOf(req.Date)

	var booked attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.quotaService.ConsumeSick(txCtx, scope.ident.EmployeeID, period); err != nil {
			return err
		}

		var applied bool
		booked, applied, err = a.AttendanceRepository.MarkLeave(txCtx, scope.ident.EmployeeID, scope.ident.CompanyID, scope.dayStart, attendance.LeaveSick)
		if err != nil {
			return err
		}
		if !applied {
			return attendance.ErrAlreadyMarkedPresent
		}
		return nil
	})
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	return dayStatus(&booked), nil
}
