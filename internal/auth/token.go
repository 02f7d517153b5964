package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APIClientSubject - subject токенов, выданных по API-ключу.
const APIClientSubject = "api_client"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет HS256 токены.
type TokenManager struct {
	secret   []byte
	apiTTL   time.Duration
	adminTTL time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, apiTTL, adminTTL time.Duration) *TokenManager {
	if apiTTL <= 0 {
		apiTTL = 60 * time.Minute
	}
	if adminTTL <= 0 {
		adminTTL = 120 * time.Minute
	}
	return &TokenManager{
		secret:   []byte(secret),
		apiTTL:   apiTTL,
		adminTTL: adminTTL,
		now:      time.Now,
	}
}

func (m *TokenManager) APITokenTTL() time.Duration   { return m.apiTTL }
func (m *TokenManager) AdminTokenTTL() time.Duration { return m.adminTTL }

// IssueAPIToken - токен для клиентов каталога.
func (m *TokenManager) IssueAPIToken() (string, error) {
	return m.issue(APIClientSubject, m.apiTTL)
}

// IssueAdminToken - токен для cookie админки, subject = имя администратора.
func (m *TokenManager) IssueAdminToken(username string) (string, error) {
	return m.issue(username, m.adminTTL)
}

func (m *TokenManager) issue(subject string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет подпись и срок действия, возвращает subject.
func (m *TokenManager) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
