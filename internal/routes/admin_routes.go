package routes

import (
	"lookhub/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes mounts the cookie-gated admin UI.
func SetupAdminRoutes(r *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.AdminHandler.RegisterRoutes(r)
}
