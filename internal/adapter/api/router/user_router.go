package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupUserRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	reviewHandler := handler.GetReviewHandler()

	users := api.Group("/users")
	users.POST("/me/avatar", userHandler.UploadAvatar, authMiddleware.Authenticate)

	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/reviews", reviewHandler.GetUserReviews)
}
