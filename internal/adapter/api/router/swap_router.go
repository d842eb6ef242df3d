package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupSwapRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	swapHandler := handler.GetSwapHandler()
	reviewHandler := handler.GetReviewHandler()

	swaps := api.Group("/swaps", authMiddleware.Authenticate)

	swaps.GET("", swapHandler.ListSwaps)
	swaps.POST("", swapHandler.CreateSwap)
	swaps.GET("/:id", swapHandler.GetSwap)
	swaps.PATCH("/:id/status", swapHandler.UpdateStatus)
	swaps.POST("/:id/confirm", swapHandler.ConfirmCompletion)
	swaps.POST("/:id/milestones", swapHandler.AddMilestone)
	swaps.PATCH("/:id/milestones/:milestoneId/complete", swapHandler.CompleteMilestone)
	swaps.PUT("/:id/notes", swapHandler.UpdateNotes)
	swaps.GET("/:id/history", swapHandler.GetHistory)

	swaps.POST("/:id/reviews", reviewHandler.CreateReview)
}
