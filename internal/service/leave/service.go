package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/company"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/employee"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/leave"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/clock"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/validator"
)

type QuotaServiceImpl struct {
	leave.QuotaRepository
	employee.EmployeeRepository
	company.CompanyRepository
}

func NewQuotaService(
	quotaRepo leave.QuotaRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) leave.QuotaService {
	return &QuotaServiceImpl{
		QuotaRepository:    quotaRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
	}
}

// Balance implements leave.QuotaService. An empty period defaults to the
// current month in the caller's company offset.
func (s *QuotaServiceImpl) Balance(ctx context.Context, period string) (leave.Balance, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.Balance{}, err
	}

	if period == "" {
		comp, err := s.CompanyRepository.GetByID(ctx, ident.CompanyID)
		if err != nil {
			return leave.Balance{}, fmt.Errorf("failed to get company: %w", err)
		}
		clk := clock.New(comp.UTCOffsetMinutes)
		period = time.Now().UTC().In(clk.Location()).Format(leave.PeriodLayout)
	} else if _, err := time.Parse(leave.PeriodLayout, period); err != nil {
		return leave.Balance{}, validator.ValidationErrors{
			{Field: "period", Message: "period must be in YYYY-MM format"},
		}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, ident.EmployeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	quota, err := s.QuotaRepository.GetForPeriod(ctx, ident.EmployeeID, period)
	if err != nil {
		return leave.Balance{}, err
	}

	var sickTaken, halfTaken int
	if quota != nil {
		sickTaken = quota.SickLeaves
		halfTaken = quota.HalfDayLeaves
	}

	balance := leave.Balance{
		Period:        period,
		SickTaken:     sickTaken,
		SickRemaining: leave.Remaining(emp.SickDaysPerMonth, sickTaken),
		HalfDayTaken:  halfTaken,
	}
	if emp.HalfDaysPerMonth != nil {
		remaining := leave.Remaining(*emp.HalfDaysPerMonth, halfTaken)
		balance.HalfDayRemaining = &remaining
	}

	return balance, nil
}

// ConsumeSick implements leave.QuotaService.
func (s *QuotaServiceImpl) ConsumeSick(ctx context.Context, employeeID, period string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	applied, err := s.QuotaRepository.ConsumeSick(ctx, employeeID, period, emp.SickDaysPerMonth)
	if err != nil {
		return err
	}
	if !applied {
		return leave.ErrInsufficientQuota
	}
	return nil
}

// ConsumeHalfDay implements leave.QuotaService.
func (s *QuotaServiceImpl) ConsumeHalfDay(ctx context.Context, employeeID, period string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	applied, err := s.QuotaRepository.ConsumeHalfDay(ctx, employeeID, period, emp.HalfDaysPerMonth)
	if err != nil {
		return err
	}
	if !applied {
		return leave.ErrInsufficientQuota
	}
	return nil
}
