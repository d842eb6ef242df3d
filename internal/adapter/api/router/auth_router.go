package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupAuthRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := auth.Group("", authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
	protected.PUT("/updatedetails", authHandler.UpdateDetails)
	protected.PUT("/updatepassword", authHandler.UpdatePassword)
}
