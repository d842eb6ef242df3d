package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
	"swapskillz/pkg/utils"
)

type SkillHandler struct {
	skillUseCase *usecase.SkillUseCase
}

func NewSkillHandler(skillUseCase *usecase.SkillUseCase) *SkillHandler {
	return &SkillHandler{
		skillUseCase: skillUseCase,
	}
}

type skillRequest struct {
	Title       string               `json:"title" validate:"required,min=2,max=100"`
	Category    string               `json:"category"`
	Level       string               `json:"level"`
	Description string               `json:"description" validate:"max=2000"`
	Location    entity.SkillLocation `json:"location"`
}

func (r skillRequest) input() usecase.SkillInput {
	return usecase.SkillInput{
		Title:       r.Title,
		Category:    r.Category,
		Level:       r.Level,
		Description: r.Description,
		Location:    r.Location,
	}
}

// BrowseSkills is public. exclude_mine only applies when the optional
// auth middleware resolved a caller.
func (h *SkillHandler) BrowseSkills(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	input := usecase.BrowseSkillsInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Level:    c.QueryParam("level"),
	}
	if exclude, _ := strconv.ParseBool(c.QueryParam("exclude_mine")); exclude {
		input.ExcludeUserID = currentUserID(c)
	}

	skills, total, err := h.skillUseCase.Browse(c.Request().Context(), input, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, skills, total, p.Page, p.PageSize)
}

func (h *SkillHandler) ListMySkills(c echo.Context) error {
	skills, err := h.skillUseCase.ListMine(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, skills)
}

func (h *SkillHandler) CreateSkill(c echo.Context) error {
	var req skillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	skill, err := h.skillUseCase.Create(c.Request().Context(), currentUserID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, skill)
}

func (h *SkillHandler) UpdateSkill(c echo.Context) error {
	var req skillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	skill, err := h.skillUseCase.Update(c.Request().Context(), currentUserID(c), c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, skill)
}

func (h *SkillHandler) DeleteSkill(c echo.Context) error {
	if err := h.skillUseCase.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
