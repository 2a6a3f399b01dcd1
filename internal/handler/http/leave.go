package http

import (
	"encoding/json"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/attendance"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	RequestLeave(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	attendanceService attendance.AttendanceService
	quotaService      leave.QuotaService
}

func NewLeaveHandler(attendanceService attendance.AttendanceService, quotaService leave.QuotaService) LeaveHandler {
	return &leaveHandlerImpl{
		attendanceService: attendanceService,
		quotaService:      quotaService,
	}
}

// RequestLeave implements LeaveHandler.
func (h *leaveHandlerImpl) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var req attendance.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.RequestLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave recorded", resp)
}

// GetBalance implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	balance, err := h.quotaService.Balance(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
