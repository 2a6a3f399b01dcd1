package http

import (
	"encoding/json"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
	StartLunchBreak(w http.ResponseWriter, r *http.Request)
	EndLunchBreak(w http.ResponseWriter, r *http.Request)
	RequestHalfDay(w http.ResponseWriter, r *http.Request)
	SubmitOvertime(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	resp, err := h.attendanceService.GetDayStatus(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SignIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.SignIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed in", resp)
}

// SignOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.SignOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.SignOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed out", resp)
}

// StartLunchBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartLunchBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.LunchBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.StartLunchBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lunch break started", resp)
}

// EndLunchBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndLunchBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.LunchBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.EndLunchBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lunch break ended", resp)
}

// RequestHalfDay implements AttendanceHandler. Serves both the booking of a
// future half day and the in-place conversion of today's session.
func (h *attendanceHandlerImpl) RequestHalfDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.HalfDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.RequestHalfDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Half day recorded", resp)
}

// SubmitOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	var req attendance.OvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.SubmitOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime submitted", resp)
}
