package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupAdminRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := api.Group("/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.PATCH("/reviews/:id/visibility", adminHandler.SetReviewVisibility)
	admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
}
