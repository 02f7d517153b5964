package routes

import (
	_ "lookhub/docs"
	"lookhub/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupPublicRoutes(r *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.FrontendHandler.RegisterRoutes(r)
	appHandlers.ImageHandler.RegisterRoutes(r)
	appHandlers.HealthHandler.RegisterRoutes(r)

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
