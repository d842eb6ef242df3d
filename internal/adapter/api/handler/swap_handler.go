package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
	"swapskillz/pkg/utils"
)

type SwapHandler struct {
	swapUseCase *usecase.SwapUseCase
}

func NewSwapHandler(swapUseCase *usecase.SwapUseCase) *SwapHandler {
	return &SwapHandler{
		swapUseCase: swapUseCase,
	}
}

type createSwapRequest struct {
	ProviderID        string                `json:"provider_id" validate:"required"`
	SkillOffered      entity.SwapSkill      `json:"skill_offered"`
	SkillRequested    entity.SwapSkill      `json:"skill_requested"`
	Title             string                `json:"title" validate:"required,max=100"`
	Description       string                `json:"description" validate:"required,max=1000"`
	ProposedStartDate time.Time             `json:"proposed_start_date" validate:"required"`
	ProposedEndDate   time.Time             `json:"proposed_end_date" validate:"required"`
	MeetingType       string                `json:"meeting_type" validate:"required,oneof=In-person Online Hybrid"`
	Location          entity.Location       `json:"location"`
	OnlineDetails     entity.OnlineDetails  `json:"online_details"`
	EstimatedHours    entity.EstimatedHours `json:"estimated_hours"`
	Schedule          []entity.ScheduleSlot `json:"schedule"`
	Tags              []string              `json:"tags"`
	Priority          string                `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type milestoneRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	DueDate     *time.Time `json:"due_date"`
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

func views(swaps []*entity.SkillSwap) []entity.SwapView {
	out := make([]entity.SwapView, 0, len(swaps))
	for _, s := range swaps {
		out = append(out, service.View(s))
	}
	return out
}

func (h *SwapHandler) CreateSwap(c echo.Context) error {
	var req createSwapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	swap, err := h.swapUseCase.Create(c.Request().Context(), currentUserID(c), usecase.CreateSwapInput{
		ProviderID:        req.ProviderID,
		SkillOffered:      req.SkillOffered,
		SkillRequested:    req.SkillRequested,
		Title:             req.Title,
		Description:       req.Description,
		ProposedStartDate: req.ProposedStartDate,
		ProposedEndDate:   req.ProposedEndDate,
		MeetingType:       req.MeetingType,
		Location:          req.Location,
		OnlineDetails:     req.OnlineDetails,
		EstimatedHours:    req.EstimatedHours,
		Schedule:          req.Schedule,
		Tags:              req.Tags,
		Priority:          req.Priority,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, service.View(swap))
}

func (h *SwapHandler) ListSwaps(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	swaps, total, err := h.swapUseCase.List(c.Request().Context(), currentUserID(c), c.QueryParam("status"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views(swaps), total, p.Page, p.PageSize)
}

func (h *SwapHandler) GetSwap(c echo.Context) error {
	swap, err := h.swapUseCase.Get(c.Request().Context(), currentCaller(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, service.View(swap))
}

func (h *SwapHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	swap, err := h.swapUseCase.UpdateStatus(c.Request().Context(), currentCaller(c), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service.View(swap))
}

func (h *SwapHandler) ConfirmCompletion(c echo.Context) error {
	swap, err := h.swapUseCase.ConfirmCompletion(c.Request().Context(), currentCaller(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, service.View(swap))
}

func (h *SwapHandler) AddMilestone(c echo.Context) error {
	var req milestoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	swap, err := h.swapUseCase.AddMilestone(c.Request().Context(), currentCaller(c), c.Param("id"), usecase.MilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, service.View(swap))
}

func (h *SwapHandler) CompleteMilestone(c echo.Context) error {
	swap, err := h.swapUseCase.CompleteMilestone(c.Request().Context(), currentCaller(c), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, service.View(swap))
}

func (h *SwapHandler) UpdateNotes(c echo.Context) error {
	var req notesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	swap, err := h.swapUseCase.UpdateNotes(c.Request().Context(), currentCaller(c), c.Param("id"), req.Notes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service.View(swap))
}

func (h *SwapHandler) GetHistory(c echo.Context) error {
	logs, err := h.swapUseCase.History(c.Request().Context(), currentCaller(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, logs)
}
