package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opticalspaces/attendance-backend-go/internal/domain/auth"
	"github.com/opticalspaces/attendance-backend-go/internal/domain/employee"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService. Unknown emails and wrong passwords
// produce the same error so the response does not leak which one failed.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !emp.ComparePassword(req.Password) {
		slog.Debug("password mismatch on login", "employee_id", emp.ID)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(emp.ID, emp.CompanyID, emp.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		EmployeeID: emp.ID,
		Name:       emp.Name,
		CompanyID:  emp.CompanyID,
	}, nil
}
