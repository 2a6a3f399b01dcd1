package company

import (
	"context"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{CompanyRepository: companyRepo}
}

func scheduleResponse(c company.Company) company.ScheduleResponse {
	return company.ScheduleResponse{
		StartTime:            c.StartTime,
		EndTime:              c.EndTime,
		AcceptLunch:          c.AcceptLunch,
		LunchStartTime:       c.LunchStartTime,
		LunchDurationMinutes: c.LunchDurationMinutes,
		UTCOffsetMinutes:     c.UTCOffsetMinutes,
	}
}

// GetSchedule implements company.CompanyService.
func (s *CompanyServiceImpl) GetSchedule(ctx context.Context) (company.ScheduleResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return company.ScheduleResponse{}, err
	}

	c, err := s.CompanyRepository.GetByID(ctx, ident.CompanyID)
	if err != nil {
		return company.ScheduleResponse{}, err
	}

	return scheduleResponse(c), nil
}

// UpdateSchedule implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateSchedule(ctx context.Context, req company.UpdateScheduleRequest) (company.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return company.ScheduleResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return company.ScheduleResponse{}, err
	}

	c, err := s.CompanyRepository.UpdateSchedule(ctx, ident.CompanyID, req)
	if err != nil {
		return company.ScheduleResponse{}, err
	}

	return scheduleResponse(c), nil
}
