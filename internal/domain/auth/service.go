package auth

import (
	"context"
)

// AuthService resolves an employee identity from a login credential and
// issues access tokens. Everything past this boundary trusts the resolved
// identity.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
