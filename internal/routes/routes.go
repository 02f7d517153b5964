package routes

import (
	"lookhub/internal/handlers"
	"lookhub/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	requireAPIAuth gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ClothesHandler.RegisterRoutes(api, requireAPIAuth)
		appHandlers.LookHandler.RegisterRoutes(api, requireAPIAuth)
	}

	SetupPublicRoutes(ginRouter, appHandlers)
	SetupAdminRoutes(ginRouter, appHandlers)

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
