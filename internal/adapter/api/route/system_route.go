package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/controller"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/gemini-chat/docs"
)

// SetupSystemRoutes configura health check, status e documentação
func SetupSystemRoutes(router *gin.Engine, api *gin.RouterGroup, systemController *controller.SystemController, noRoute ...gin.HandlerFunc) {
	router.GET("/health", systemController.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api.GET("/status", systemController.Status)
	api.GET("/docs", systemController.Docs)

	// arquivos do frontend e 404
	router.NoRoute(append(noRoute, systemController.NoRoute)...)
}
