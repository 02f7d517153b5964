package middleware

import (
	"net/http"
	"strings"

	"lookhub/internal/logger"
	"lookhub/pkg/apperrors"
	"lookhub/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AdminCookie is the name of the cookie carrying the admin session token.
const AdminCookie = "admin_token"

// TokenVerifier is the part of the auth service the middlewares need.
type TokenVerifier interface {
	VerifyAPIToken(token string) error
	VerifyAdminToken(token string) (string, error)
}

// APIAuth - middleware проверки bearer JWT (sub=api_client)
func APIAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authenticated"))
			c.Abort()
			return
		}

		if err := verifier.VerifyAPIToken(token); err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected bearer token", "path", c.Request.URL.Path)
			c.Header("WWW-Authenticate", "Bearer")
			if _, ok := apperrors.AsAppError(err); !ok {
				err = apperrors.ErrInvalidToken(err)
			}
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.SubjectKey), "api_client")
		c.Request = c.Request.WithContext(logger.WithSubject(c.Request.Context(), "api_client"))
		c.Next()
	}
}

// AdminAuth пропускает только запросы с валидной admin-кукой, остальных отправляет на логин.
func AdminAuth(verifier TokenVerifier, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		username, err := verifier.VerifyAdminToken(token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Invalid admin cookie", "path", c.Request.URL.Path)
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.AdminKey), username)
		c.Request = c.Request.WithContext(logger.WithSubject(c.Request.Context(), username))
		c.Next()
	}
}

// GetAdmin returns the admin username set by AdminAuth.
func GetAdmin(c *gin.Context) string {
	return c.GetString(string(contextkeys.AdminKey))
}
