package router

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/adapter/api/handler"
	"swapskillz/internal/adapter/api/middleware"
)

func SetupSkillRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	skillHandler := handler.GetSkillHandler()

	skills := api.Group("/skills")
	skills.GET("", skillHandler.BrowseSkills, authMiddleware.Optional)

	protected := skills.Group("", authMiddleware.Authenticate)
	protected.GET("/me", skillHandler.ListMySkills)
	protected.POST("", skillHandler.CreateSkill)
	protected.PUT("/:id", skillHandler.UpdateSkill)
	protected.DELETE("/:id", skillHandler.DeleteSkill)
}
