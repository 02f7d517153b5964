package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/auth"
	"lookhub/internal/services"
	"lookhub/internal/services/dto"
)

func newAuthService(t *testing.T) services.AuthService {
	t.Helper()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	return services.NewAuthService(
		auth.NewTokenManager("unit-test-secret", time.Hour, time.Hour),
		services.AuthConfig{APIKey: "key", AdminUsername: "admin", AdminPassword: hash},
	)
}

func TestAuthService_IssueAPIToken(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.IssueAPIToken(context.Background(), "wrong")
	requireAppError(t, err, http.StatusUnauthorized)

	resp, err := svc.IssueAPIToken(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NoError(t, svc.VerifyAPIToken(resp.AccessToken))

	// API-токен не открывает админку
	_, err = svc.VerifyAdminToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_AdminLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "nope"})
	requireAppError(t, err, http.StatusUnauthorized)
	_, err = svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "root", Password: "s3cret"})
	requireAppError(t, err, http.StatusUnauthorized)

	session, err := svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 3600, session.MaxAge)

	username, err := svc.VerifyAdminToken(session.AdminToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.NoError(t, svc.VerifyAPIToken(session.APIToken))
	assert.Error(t, svc.VerifyAPIToken(session.AdminToken))
}
