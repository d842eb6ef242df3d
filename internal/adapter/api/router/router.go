package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	api := e.Group("/api")

	SetupAuthRouter(api, authMiddleware)
	SetupUserRouter(api, authMiddleware)
	SetupSkillRouter(api, authMiddleware)
	SetupSwapRouter(api, authMiddleware)
	SetupReviewRouter(api, authMiddleware)
	SetupMessageRouter(api, authMiddleware)
	SetupAdminRouter(api, authMiddleware, adminMiddleware)
}

// SetupWebSocketRouter mounts the push channel outside /api.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/ws", wsHandler.HandleWebSocket, authMiddleware.AuthenticateQuery)
}
