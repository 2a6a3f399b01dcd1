package attendance

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
	"github.com/opticalspaces/attendance-backend-go/internal/repository/postgresql"
	leaveService "github.com/opticalspaces/attendance-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

const testSchema = `
CREATE TABLE IF NOT EXISTS companies (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name text NOT NULL,
	email text NOT NULL DEFAULT '',
	password text NOT NULL DEFAULT '',
	start_time text NOT NULL DEFAULT '',
	end_time text NOT NULL DEFAULT '',
	accept_lunch boolean NOT NULL DEFAULT false,
	lunch_start_time text,
	lunch_duration_minutes integer,
	utc_offset_minutes integer NOT NULL DEFAULT 0,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS employees (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id uuid NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	name text NOT NULL,
	email text NOT NULL UNIQUE,
	password text NOT NULL DEFAULT '',
	role text NOT NULL DEFAULT 'employee',
	sick_days_per_month integer NOT NULL DEFAULT 7,
	half_days_per_month integer,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS attendances (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id uuid NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
	company_id uuid NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	date timestamptz NOT NULL,
	sign_in_time timestamptz,
	sign_out_time timestamptz,
	lunch_break_start timestamptz,
	lunch_break_end timestamptz,
	lunch_break_taken boolean NOT NULL DEFAULT false,
	present_absent_status text NOT NULL DEFAULT 'present',
	half_day boolean NOT NULL DEFAULT false,
	work_location text NOT NULL DEFAULT '',
	leave_type text,
	overtime_hours double precision NOT NULL DEFAULT 0,
	total_hours_worked double precision NOT NULL DEFAULT 0,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (employee_id, date)
);
CREATE TABLE IF NOT EXISTS leave_quotas (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id uuid NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
	period text NOT NULL,
	sick_leaves integer NOT NULL DEFAULT 0,
	half_day_leaves integer NOT NULL DEFAULT 0,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (employee_id, period)
);
`

func testInit(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if _, err := testDB.Exec(context.Background(), testSchema); err != nil {
			panic("Failed to apply test schema: " + err.Error())
		}
	})
	return testDB
}

// middayOffset returns a UTC offset that puts the company's local wall
// clock at roughly 12:00 right now, keeping a 09:00-18:00 schedule
// deterministic regardless of when the tests run.
func middayOffset(now time.Time) int {
	return 720 - (now.Hour()*60 + now.Minute())
}

type companyFixture struct {
	offset      int
	start       string
	end         string
	acceptLunch bool
	lunchDur    *int
}

func createTestCompany(t *testing.T, ctx context.Context, db *database.DB, fx companyFixture) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO companies (name, email, start_time, end_time, accept_lunch, lunch_start_time, lunch_duration_minutes, utc_offset_minutes)
		VALUES ('Test Company', $1, $2, $3, $4, '12:00', $5, $6)
		RETURNING id
	`, fmt.Sprintf("company-%s@example.com", uuid.NewString()), fx.start, fx.end, fx.acceptLunch, fx.lunchDur, fx.offset).Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID string, sickDays int, halfDays *int) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (company_id, name, email, sick_days_per_month, half_days_per_month)
		VALUES ($1, 'Test Employee', $2, $3, $4)
		RETURNING id
	`, companyID, fmt.Sprintf("employee-%s@example.com", uuid.NewString()), sickDays, halfDays).Scan(&id)
	require.NoError(t, err)
	return id
}

func testCtx(t *testing.T, employeeID, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(db *database.DB) attendance.AttendanceService {
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	quotaRepo := postgresql.NewLeaveQuotaRepository(db)
	quotaSvc := leaveService.NewQuotaService(quotaRepo, employeeRepo, companyRepo)
	return NewAttendanceService(db, attendanceRepo, companyRepo, quotaSvc)
}

func intPtr(v int) *int { return &v }

func TestSignIn_Success(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)

	resp, err := svc.SignIn(testCtx(t, employeeID, companyID), attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateSignedIn, resp.Status)
	require.NotNil(t, resp.SignInTime)
	assert.Equal(t, attendance.LocationOffice, resp.Location)
	assert.Equal(t, attendance.StatusPresent, resp.PresentAbsentStatus)
	assert.False(t, resp.HalfDay)
}

func TestSignIn_Twice(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFH"})
	require.NoError(t, err)

	_, err = svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFH"})
	assert.ErrorIs(t, err, attendance.ErrAlreadySignedIn)
}

func TestSignIn_OutsideWindow(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	// Local noon is well past this schedule's end time.
	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "00:00", end: "00:30"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)

	_, err := svc.SignIn(testCtx(t, employeeID, companyID), attendance.SignInRequest{Date: today, Location: "WFO"})
	assert.ErrorIs(t, err, attendance.ErrOutsideSignInWindow)
}

func TestSignOut_Flow(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)

	hint := 99.0
	resp, err := svc.SignOut(authCtx, attendance.SignOutRequest{Date: today, Hours: &hint})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateSignedOut, resp.Status)
	require.NotNil(t, resp.SignOutTime)
	// The client hint is ignored; the session lasted well under a minute.
	assert.Less(t, resp.TotalHoursWorked, 0.1)

	_, err = svc.SignOut(authCtx, attendance.SignOutRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrAlreadySignedOut)

	status, err := svc.GetDayStatus(authCtx, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateSignedOut, status.Status)
}

func TestSignOut_WithoutSignIn(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)

	_, err := svc.SignOut(testCtx(t, employeeID, companyID), attendance.SignOutRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrNotSignedIn)
}

func TestLunchBreak_Flow(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{
		offset: offset, start: "09:00", end: "18:00", acceptLunch: true, lunchDur: intPtr(60),
	})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.StartLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrNotSignedIn)

	_, err = svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)

	resp, err := svc.StartLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateOnLunchBreak, resp.Status)
	assert.True(t, resp.LunchBreakTaken)

	_, err = svc.StartLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrLunchAlreadyTaken)

	resp, err = svc.EndLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateSignedIn, resp.Status)
	require.NotNil(t, resp.LunchBreakEnd)

	_, err = svc.EndLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrNotOnLunchBreak)

	// The taken flag is sticky: no second break even after the first ended.
	_, err = svc.StartLunchBreak(authCtx, attendance.LunchBreakRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrLunchAlreadyTaken)
}

func TestLunchBreak_NotAccepted(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)

	_, err := svc.StartLunchBreak(testCtx(t, employeeID, companyID), attendance.LunchBreakRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrLunchNotAccepted)
}

func TestHalfDay_ConvertToday(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, intPtr(3))
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	signed, err := svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)

	resp, err := svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: today})
	require.NoError(t, err)
	assert.True(t, resp.HalfDay)
	require.NotNil(t, resp.SignOutTime)
	assert.WithinDuration(t, signed.SignInTime.Add(4*time.Hour), *resp.SignOutTime, time.Second)
	assert.InDelta(t, 4.0, resp.TotalHoursWorked, 0.01)

	_, err = svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: today})
	assert.ErrorIs(t, err, attendance.ErrHalfDayAlreadyRequested)
}

func TestHalfDay_FutureBooking(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, intPtr(3))
	svc := newTestService(db)
	clk := clock.New(offset)
	tomorrow := clk.LocalDate(now.Add(24 * time.Hour))
	authCtx := testCtx(t, employeeID, companyID)

	resp, err := svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: tomorrow})
	require.NoError(t, err)
	assert.True(t, resp.HalfDay)
	assert.Nil(t, resp.SignInTime)
	assert.Equal(t, attendance.StatusPresent, resp.PresentAbsentStatus)

	_, err = svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: tomorrow})
	assert.ErrorIs(t, err, attendance.ErrHalfDayAlreadyExists)

	_, err = svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: "2000-01-01"})
	var validationErrs validator.ValidationErrors
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErrs)
}

func TestHalfDay_QuotaExhausted(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, intPtr(0))
	svc := newTestService(db)
	tomorrow := clock.New(offset).LocalDate(now.Add(24 * time.Hour))

	_, err := svc.RequestHalfDay(testCtx(t, employeeID, companyID), attendance.HalfDayRequest{Date: tomorrow})
	assert.ErrorIs(t, err, leave.ErrInsufficientQuota)
}

func TestOvertime(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	clk := clock.New(offset)
	today := clk.LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.SubmitOvertime(authCtx, attendance.OvertimeRequest{Date: today, Hours: 2})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)
	_, err = svc.SignOut(authCtx, attendance.SignOutRequest{Date: today})
	require.NoError(t, err)

	resp, err := svc.SubmitOvertime(authCtx, attendance.OvertimeRequest{Date: today, Hours: 2.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, resp.OvertimeHours, 0.001)

	_, err = svc.SubmitOvertime(authCtx, attendance.OvertimeRequest{Date: today, Hours: 1})
	assert.ErrorIs(t, err, attendance.ErrOvertimeAlreadySubmitted)

	_, err = svc.SubmitOvertime(authCtx, attendance.OvertimeRequest{Date: today, Hours: 13})
	assert.Error(t, err)
}

func TestOvertime_OnHalfDay(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	tomorrow := clock.New(offset).LocalDate(now.Add(24 * time.Hour))
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.RequestHalfDay(authCtx, attendance.HalfDayRequest{Date: tomorrow})
	require.NoError(t, err)

	_, err = svc.SubmitOvertime(authCtx, attendance.OvertimeRequest{Date: tomorrow, Hours: 2})
	assert.ErrorIs(t, err, attendance.ErrOvertimeOnHalfDay)
}

func TestRequestLeave_Flow(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 1, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	resp, err := svc.RequestLeave(authCtx, attendance.LeaveRequest{Date: today, Type: "sick"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateAbsentOnLeave, resp.Status)
	require.NotNil(t, resp.LeaveType)
	assert.Equal(t, attendance.LeaveSick, *resp.LeaveType)
	assert.Equal(t, attendance.StatusAbsent, resp.PresentAbsentStatus)

	// Allowance of 1 is spent; the next request this month is rejected and
	// books nothing.
	_, err = svc.RequestLeave(authCtx, attendance.LeaveRequest{Date: today, Type: "sick"})
	assert.ErrorIs(t, err, leave.ErrInsufficientQuota)

	_, err = svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	assert.ErrorIs(t, err, attendance.ErrSignInOnLeaveDay)
}

func TestRequestLeave_AfterSignIn(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)
	today := clock.New(offset).LocalDate(now)
	authCtx := testCtx(t, employeeID, companyID)

	_, err := svc.SignIn(authCtx, attendance.SignInRequest{Date: today, Location: "WFO"})
	require.NoError(t, err)

	_, err = svc.RequestLeave(authCtx, attendance.LeaveRequest{Date: today, Type: "sick"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarkedPresent)
}

func TestRequestLeave_PastDate(t *testing.T) {
	db := testInit(t)
	ctx := context.Background()
	now := time.Now().UTC()
	offset := middayOffset(now)

	companyID := createTestCompany(t, ctx, db, companyFixture{offset: offset, start: "09:00", end: "18:00"})
	employeeID := createTestEmployee(t, ctx, db, companyID, 7, nil)
	svc := newTestService(db)

	_, err := svc.RequestLeave(testCtx(t, employeeID, companyID), attendance.LeaveRequest{Date: "2000-01-01", Type: "sick"})
	var validationErrs validator.ValidationErrors
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErrs)
}
