package services

import (
	"context"
	"crypto/subtle"

	"lookhub/internal/auth"
	"lookhub/internal/logger"
	"lookhub/internal/services/dto"
	"lookhub/pkg/apperrors"
)

type AuthService interface {
	// IssueAPIToken exchanges the shared API key for a bearer token.
	IssueAPIToken(ctx context.Context, apiKey string) (*dto.TokenResponse, error)
	// AdminLogin checks admin credentials and issues the cookie token plus an API token for the UI.
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminSession, error)
	// VerifyAPIToken returns nil when the bearer token belongs to an API client.
	VerifyAPIToken(token string) error
	// VerifyAdminToken returns the admin username stored in the cookie token.
	VerifyAdminToken(token string) (string, error)
}

type AuthConfig struct {
	APIKey        string
	AdminUsername string
	AdminPassword string // plain text or bcrypt hash
}

type authService struct {
	tokens *auth.TokenManager
	cfg    AuthConfig
}

func NewAuthService(tokens *auth.TokenManager, cfg AuthConfig) AuthService {
	return &authService{tokens: tokens, cfg: cfg}
}

func (s *authService) IssueAPIToken(ctx context.Context, apiKey string) (*dto.TokenResponse, error) {
	if s.cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.cfg.APIKey)) != 1 {
		logger.CtxWarn(ctx, "Rejected API key")
		return nil, apperrors.ErrInvalidAPIKey()
	}

	token, err := s.tokens.IssueAPIToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminSession, error) {
	userOK := s.cfg.AdminUsername != "" &&
		subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	passOK := auth.CheckSecret(req.Password, s.cfg.AdminPassword)
	if !userOK || !passOK {
		logger.CtxWarn(ctx, "Failed admin login", "username", req.Username)
		return nil, apperrors.ErrInvalidCredentials()
	}

	adminToken, err := s.tokens.IssueAdminToken(req.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	apiToken, err := s.tokens.IssueAPIToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin logged in", "username", req.Username)
	return &dto.AdminSession{
		AdminToken: adminToken,
		APIToken:   apiToken,
		MaxAge:     int(s.tokens.AdminTokenTTL().Seconds()),
	}, nil
}

func (s *authService) VerifyAPIToken(token string) error {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return apperrors.ErrInvalidToken(err)
	}
	if subject != auth.APIClientSubject {
		return apperrors.ErrInvalidToken(nil)
	}
	return nil
}

func (s *authService) VerifyAdminToken(token string) (string, error) {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return "", apperrors.ErrInvalidToken(err)
	}
	if subject != s.cfg.AdminUsername {
		return "", apperrors.ErrInvalidToken(nil)
	}
	return subject, nil
}
