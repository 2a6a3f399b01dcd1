package http

import (
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/cron"
)

type CronHandler interface {
	TriggerAutoSignOut(w http.ResponseWriter, r *http.Request)
}

type cronHandlerImpl struct {
	attendanceJobs *cron.AttendanceJobs
}

func NewCronHandler(attendanceJobs *cron.AttendanceJobs) CronHandler {
	return &cronHandlerImpl{attendanceJobs: attendanceJobs}
}

// TriggerAutoSignOut implements CronHandler. Runs one reconciliation batch
// synchronously and returns its report.
func (h *cronHandlerImpl) TriggerAutoSignOut(w http.ResponseWriter, r *http.Request) {
	report, err := h.attendanceJobs.RunAutoSignOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Auto sign-out completed", report)
}
