package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	attendancesvc "github.com/opticalspaces/attendance-backend-go/internal/service/attendance"
)

// AttendanceJobs holds the auto sign-out reconciler. It sweeps every
// company whose working day has ended and force-closes sessions that were
// never signed out.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	companyRepo    company.CompanyRepository
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_sign_out", interval, func(ctx context.Context) error {
		_, err := j.RunAutoSignOut(ctx)
		return err
	})
}

// RunAutoSignOut executes one reconciliation batch and reports what it did.
// Per-record failures are collected into the report instead of aborting the
// sweep; only a failure to enumerate companies is a batch error.
//
// The sweep is idempotent: closed sessions never match the open-session
// query, so a rerun touches nothing.
func (j *AttendanceJobs) RunAutoSignOut(ctx context.Context) (attendance.ReconciliationReport, error) {
	now := time.Now().UTC()
	report := attendance.ReconciliationReport{
		Errors:    []string{},
		Timestamp: now,
	}

	companies, err := j.companyRepo.ListWithEndTime(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list companies: %w", err)
	}

	for _, comp := range companies {
		clk := clock.New(comp.UTCOffsetMinutes)
		today := clk.LocalDate(now)

		deadline, err := clk.At(today, comp.EndTime)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("company %s: invalid end time: %v", comp.ID, err))
			continue
		}
		// The company's working day is still running; leave it alone.
		if now.Before(deadline) {
			continue
		}

		report.ProcessedCompanies++

		dayStart, dayEnd, err := clk.DayInterval(today)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("company %s: %v", comp.ID, err))
			continue
		}

		sessions, err := j.attendanceRepo.FindOpenSessions(ctx, comp.ID, dayStart, dayEnd)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("company %s: %v", comp.ID, err))
			continue
		}

		for _, session := range sessions {
			closed, err := j.closeSession(ctx, clk, comp, today, deadline, session)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("employee %s: %v", session.EmployeeID, err))
				continue
			}
			if closed {
				report.AutoSignedOutEmployees++
			}
		}
	}

	slog.Info("Auto sign-out batch completed",
		"processed_companies", report.ProcessedCompanies,
		"auto_signed_out", report.AutoSignedOutEmployees,
		"errors", len(report.Errors),
	)

	return report, nil
}

// closeSession force-closes one open session. Half-day sessions end at the
// midpoint of the company's work window, full days at the end time. A lunch
// break still open at that point is closed at its configured duration so the
// subtraction stays well-defined.
func (j *AttendanceJobs) closeSession(ctx context.Context, clk clock.Clock, comp company.Company, today string, deadline time.Time, session attendance.Attendance) (bool, error) {
	signOut := deadline
	if session.HalfDay {
		mid, err := clk.Midpoint(today, comp.StartTime, comp.EndTime)
		if err == nil {
			signOut = mid
		}
	}
	if session.SignInTime != nil && signOut.Before(*session.SignInTime) {
		signOut = *session.SignInTime
	}

	var lunchEnd *time.Time
	lunchComplete := session.LunchBreakStart != nil && session.LunchBreakEnd != nil
	if session.IsOnLunchBreak() && comp.LunchMinutes() > 0 {
		le := session.LunchBreakStart.Add(time.Duration(comp.LunchMinutes()) * time.Minute)
		lunchEnd = &le
		lunchComplete = true
	}

	total := attendancesvc.ComputeWorkedHours(session.SignInTime, &signOut, session.HalfDay, comp.LunchMinutes(), lunchComplete)

	return j.attendanceRepo.CloseSession(ctx, session.ID, signOut, total, lunchEnd)
}
