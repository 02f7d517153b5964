package handlers

import (
	"net/http"

	"lookhub/internal/services"
	"lookhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/token", h.IssueToken)
}

// IssueToken godoc
// @Summary Получить API-токен
// @Description Обменивает общий API-ключ на bearer JWT (sub=api_client).
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param api_key formData string true "API-ключ"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	token, err := h.authService.IssueAPIToken(c.Request.Context(), req.APIKey)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
