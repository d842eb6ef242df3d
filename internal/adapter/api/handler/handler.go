package handler

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/domain/service"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/errors"
)

var (
	authHandler    *AuthHandler
	userHandler    *UserHandler
	skillHandler   *SkillHandler
	swapHandler    *SwapHandler
	reviewHandler  *ReviewHandler
	messageHandler *MessageHandler
	adminHandler   *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	skillUseCase *usecase.SkillUseCase,
	swapUseCase *usecase.SwapUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	messageUseCase *usecase.MessageUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	skillHandler = NewSkillHandler(skillUseCase)
	swapHandler = NewSwapHandler(swapUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	messageHandler = NewMessageHandler(messageUseCase)
	adminHandler = NewAdminHandler(userUseCase, reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSkillHandler() *SkillHandler {
	return skillHandler
}

func GetSwapHandler() *SwapHandler {
	return swapHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return c.Validate(req)
}

func currentUserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func currentCaller(c echo.Context) service.Caller {
	role, _ := c.Get("role").(string)
	return service.Caller{ID: currentUserID(c), Role: role}
}
