package response

import (
	"errors"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/auth"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/employee"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. State-machine conflicts
// are 409, quota exhaustion is 400, malformed input is 422; anything
// unrecognized is a 500 with no internals leaked.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadySignedIn):
		Conflict(w, "Already signed in")
	case errors.Is(err, attendance.ErrOutsideSignInWindow):
		Conflict(w, "Sign-in attempted outside the allowed time range")
	case errors.Is(err, attendance.ErrSignInOnLeaveDay):
		Conflict(w, "Cannot sign in on a leave day")
	case errors.Is(err, attendance.ErrNotSignedIn):
		Conflict(w, "Not signed in")
	case errors.Is(err, attendance.ErrAlreadySignedOut):
		Conflict(w, "Already signed out")
	case errors.Is(err, attendance.ErrLunchAlreadyTaken):
		Conflict(w, "Lunch break already taken today")
	case errors.Is(err, attendance.ErrNotOnLunchBreak):
		Conflict(w, "No lunch break in progress")
	case errors.Is(err, attendance.ErrHalfDayAlreadyExists):
		Conflict(w, "Attendance already exists for this date")
	case errors.Is(err, attendance.ErrHalfDayAlreadyRequested):
		Conflict(w, "Half day already requested for today")
	case errors.Is(err, attendance.ErrAlreadyMarkedPresent):
		Conflict(w, "Day is already marked present")
	case errors.Is(err, attendance.ErrOvertimeAlreadySubmitted):
		Conflict(w, "Overtime already submitted for this date")
	case errors.Is(err, attendance.ErrOvertimeOnHalfDay):
		Conflict(w, "Overtime is not allowed on a half day")

	// Attendance policy rejections
	case errors.Is(err, attendance.ErrLunchNotAccepted):
		BadRequest(w, "Lunch breaks are not enabled for this company", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, "Insufficient leave quota", nil)

	// Directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrScheduleNotSet):
		BadRequest(w, "Company schedule is not configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
