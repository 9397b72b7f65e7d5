package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/controller"
)

// SetupChatRoutes configura as rotas de conversas
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController) {
	router.POST("/chat", chatController.SendMessage)
	router.GET("/chats", chatController.ListChats)
	router.GET("/chat/:id", chatController.GetChat)
	router.DELETE("/chat/:id", chatController.DeleteChat)
}

// SetupLegacyRoutes configura o endpoint /prompt
func SetupLegacyRoutes(router *gin.Engine, chatController *controller.ChatController) {
	router.POST("/prompt", chatController.Prompt)
}
