package http

import (
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/report"
	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceRange(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// AttendanceRange implements ReportHandler.
func (h *reportHandlerImpl) AttendanceRange(w http.ResponseWriter, r *http.Request) {
	req := report.RangeRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	resp, err := h.reportService.AttendanceRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
