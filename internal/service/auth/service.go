package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/auth"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Operator is the single account allowed to open the dashboard and the store
// its tokens are issued for.
type Operator struct {
	Username     string
	PasswordHash string
	StoreID      int64
}

type AuthServiceImpl struct {
	operator Operator
	jwt.Service
}

func NewAuthService(operator Operator, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		operator: operator,
		Service:  jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// the hash is checked even for an unknown username so both cases take as long
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.operator.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.operator.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}

	var (
		tokenResponse auth.AccessTokenResponse
		err           error
	)
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(a.operator.Username, a.operator.StoreID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.TokenID == "" {
		return auth.ErrInvalidToken
	}
	if !a.Service.IsTokenRevoked(req.TokenID) {
		a.Service.RevokeToken(req.TokenID, req.ExpiresAt)
	}
	return nil
}
