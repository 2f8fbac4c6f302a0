package auth

import (
	"context"
	"testing"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/auth"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, *jwt.JWTService) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	svc := NewAuthService(Operator{Username: "admin", PasswordHash: string(hash), StoreID: 467}, jwtService)
	return svc, jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotZero(t, resp.AccessTokenExpiresIn)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", token.Subject())

	claims, err := token.AsMap(ctx)
	require.NoError(t, err)
	storeID, ok := jwt.ClaimInt64(claims, jwt.ClaimStoreID)
	require.True(t, ok)
	assert.Equal(t, int64(467), storeID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "root", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_ValidationError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "username")
	assert.Contains(t, errs.ToMap(), "password")
}

func TestLogout(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, auth.LogoutRequest{TokenID: "abc", ExpiresAt: 4102444800}))
	assert.True(t, jwtService.IsTokenRevoked("abc"))

	// logging out twice is fine
	require.NoError(t, svc.Logout(ctx, auth.LogoutRequest{TokenID: "abc", ExpiresAt: 4102444800}))

	assert.ErrorIs(t, svc.Logout(ctx, auth.LogoutRequest{}), auth.ErrInvalidToken)
}
