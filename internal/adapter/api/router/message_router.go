package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupMessageRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := api.Group("/messages", authMiddleware.Authenticate)

	messages.GET("", messageHandler.GetInbox)
	messages.GET("/unread", messageHandler.GetUnreadCount)
	messages.GET("/with/:userId", messageHandler.GetConversation)
	messages.POST("", messageHandler.SendMessage)
	messages.PATCH("/:id/read", messageHandler.MarkRead)
}
