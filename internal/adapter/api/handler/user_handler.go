package handler

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/usecase"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/response"
	"swapskillz/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.List(
		c.Request().Context(),
		c.QueryParam("q"),
		c.QueryParam("category"),
		p.Page,
		p.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, p.Page, p.PageSize)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.GetPublicProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.Error(c, errors.BadRequest("Avatar file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read avatar file", err))
	}
	defer file.Close()

	user, err := h.userUseCase.UploadAvatar(
		c.Request().Context(),
		currentUserID(c),
		file,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
