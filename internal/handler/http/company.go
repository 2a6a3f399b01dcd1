package http

import (
	"encoding/json"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetSchedule(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// GetSchedule implements CompanyHandler.
func (h *companyHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := h.companyService.GetSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateSchedule implements CompanyHandler.
func (h *companyHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.companyService.UpdateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", resp)
}
