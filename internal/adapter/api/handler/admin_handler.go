package handler

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
)

type AdminHandler struct {
	userUseCase   *usecase.UserUseCase
	reviewUseCase *usecase.ReviewUseCase
}

func NewAdminHandler(userUseCase *usecase.UserUseCase, reviewUseCase *usecase.ReviewUseCase) *AdminHandler {
	return &AdminHandler{
		userUseCase:   userUseCase,
		reviewUseCase: reviewUseCase,
	}
}

type reviewVisibilityRequest struct {
	IsHidden        *bool  `json:"is_hidden" validate:"required"`
	ModerationNotes string `json:"moderation_notes" validate:"max=500"`
}

type userActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *AdminHandler) SetReviewVisibility(c echo.Context) error {
	var req reviewVisibilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Moderate(c.Request().Context(), currentCaller(c), c.Param("id"), *req.IsHidden, req.ModerationNotes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review.View())
}

func (h *AdminHandler) SetUserActive(c echo.Context) error {
	var req userActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetActive(c.Request().Context(), currentUserID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
