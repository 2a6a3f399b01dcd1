package report

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/report"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return f.records, nil
}

type fakeCompanyRepo struct {
	comp company.Company
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	return f.comp, nil
}

func (f *fakeCompanyRepo) ListWithEndTime(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) UpdateSchedule(ctx context.Context, id string, req company.UpdateScheduleRequest) (company.Company, error) {
	return f.comp, nil
}

func authedCtx(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"company_id":  "comp-1",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func dayRecord(clk clock.Clock, date string, status string, hours, overtime float64, halfDay bool) attendance.Attendance {
	day, _ := clk.LocalMidnightUTC(date)
	return attendance.Attendance{
		EmployeeID:          "emp-1",
		CompanyID:           "comp-1",
		Date:                day,
		PresentAbsentStatus: status,
		TotalHoursWorked:    hours,
		OvertimeHours:       overtime,
		HalfDay:             halfDay,
	}
}

func TestAttendanceRange_MissingDaysAreAbsent(t *testing.T) {
	clk := clock.New(330)
	svc := NewReportService(
		&fakeAttendanceRepo{records: []attendance.Attendance{
			dayRecord(clk, "2026-03-02", attendance.StatusPresent, 8, 0, false),
			dayRecord(clk, "2026-03-04", attendance.StatusPresent, 4, 0, true),
		}},
		&fakeCompanyRepo{comp: company.Company{UTCOffsetMinutes: 330}},
	)

	resp, err := svc.AttendanceRange(authedCtx(t), report.RangeRequest{Start: "2026-03-01", End: "2026-03-04"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	assert.Equal(t, "2026-03-01", resp.Days[0].Date)
	assert.Equal(t, attendance.StatusAbsent, resp.Days[0].Status)
	assert.Equal(t, attendance.StatusPresent, resp.Days[1].Status)
	assert.Equal(t, attendance.StatusAbsent, resp.Days[2].Status)
	assert.True(t, resp.Days[3].HalfDay)

	assert.Equal(t, 2, resp.Summary.PresentDays)
	assert.Equal(t, 2, resp.Summary.AbsentDays)
	assert.Equal(t, 1, resp.Summary.HalfDays)
	assert.InDelta(t, 12.0, resp.Summary.TotalHours, 0.001)
}

func TestAttendanceRange_SingleDay(t *testing.T) {
	clk := clock.New(0)
	svc := NewReportService(
		&fakeAttendanceRepo{records: []attendance.Attendance{
			dayRecord(clk, "2026-03-01", attendance.StatusPresent, 8.5, 2, false),
		}},
		&fakeCompanyRepo{comp: company.Company{UTCOffsetMinutes: 0}},
	)

	resp, err := svc.AttendanceRange(authedCtx(t), report.RangeRequest{Start: "2026-03-01", End: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.InDelta(t, 2.0, resp.Summary.OvertimeHours, 0.001)
}

func TestAttendanceRange_Validation(t *testing.T) {
	svc := NewReportService(&fakeAttendanceRepo{}, &fakeCompanyRepo{})

	_, err := svc.AttendanceRange(authedCtx(t), report.RangeRequest{Start: "2026-03-04", End: "2026-03-01"})
	assert.Error(t, err)

	_, err = svc.AttendanceRange(authedCtx(t), report.RangeRequest{Start: "not-a-date", End: "2026-03-01"})
	assert.Error(t, err)

	// A multi-year range is rejected before touching storage.
	_, err = svc.AttendanceRange(authedCtx(t), report.RangeRequest{Start: "2020-01-01", End: "2026-01-01"})
	assert.Error(t, err)
}
