package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
}
