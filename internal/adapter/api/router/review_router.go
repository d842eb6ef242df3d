package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupReviewRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := api.Group("/reviews", authMiddleware.Authenticate)

	reviews.PUT("/:id", reviewHandler.UpdateReview)
	reviews.DELETE("/:id", reviewHandler.DeleteReview)
	reviews.POST("/:id/report", reviewHandler.ReportReview)
	reviews.POST("/:id/vote", reviewHandler.VoteReview)
	reviews.POST("/:id/response", reviewHandler.RespondToReview)
}
