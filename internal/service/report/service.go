package report

import (
	"context"
	"fmt"
	"time"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/report"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

// maxRangeDays caps a single report request.
const maxRangeDays = 366

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	company.CompanyRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		CompanyRepository:    companyRepo,
	}
}

// AttendanceRange implements report.ReportService. Days in the range with
// no stored record are reported as absent without creating anything.
func (s *ReportServiceImpl) AttendanceRange(ctx context.Context, req report.RangeRequest) (report.RangeResponse, error) {
	if err := req.Validate(); err != nil {
		return report.RangeResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return report.RangeResponse{}, err
	}

	comp, err := s.CompanyRepository.GetByID(ctx, ident.CompanyID)
	if err != nil {
		return report.RangeResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	clk := clock.New(comp.UTCOffsetMinutes)

	from, err := clk.LocalMidnightUTC(req.Start)
	if err != nil {
		return report.RangeResponse{}, err
	}
	to, err := clk.NextLocalMidnightUTC(req.End)
	if err != nil {
		return report.RangeResponse{}, err
	}

	days := int(to.Sub(from).Hours() / 24)
	if days > maxRangeDays {
		return report.RangeResponse{}, validator.ValidationErrors{
			{Field: "end", Message: "range must not exceed one year"},
		}
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, ident.EmployeeID, from, to)
	if err != nil {
		return report.RangeResponse{}, err
	}

	byDate := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		byDate[clk.LocalDate(records[i].Date)] = &records[i]
	}

	resp := report.RangeResponse{Days: make([]report.DayReport, 0, days)}
	for d := 0; d < days; d++ {
		date := clk.LocalDate(from.Add(time.Duration(d) * 24 * time.Hour))

		rec, ok := byDate[date]
		if !ok {
			resp.Days = append(resp.Days, report.DayReport{
				Date:   date,
				Status: attendance.StatusAbsent,
			})
			resp.Summary.AbsentDays++
			continue
		}

		resp.Days = append(resp.Days, report.DayReport{
			Date:             date,
			Status:           rec.PresentAbsentStatus,
			SignInTime:       rec.SignInTime,
			SignOutTime:      rec.SignOutTime,
			TotalHoursWorked: rec.TotalHoursWorked,
			OvertimeHours:    rec.OvertimeHours,
			HalfDay:          rec.HalfDay,
			LeaveType:        rec.LeaveType,
		})

		if rec.PresentAbsentStatus == attendance.StatusPresent {
			resp.Summary.PresentDays++
		} else {
			resp.Summary.AbsentDays++
		}
		if rec.HalfDay {
			resp.Summary.HalfDays++
		}
		resp.Summary.TotalHours += rec.TotalHoursWorked
		resp.Summary.OvertimeHours += rec.OvertimeHours
	}

	return resp, nil
}
