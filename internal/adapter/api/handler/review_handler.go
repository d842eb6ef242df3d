package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
	"swapskillz/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type reviewRequest struct {
	Rating      int                   `json:"rating" validate:"required,min=1,max=5"`
	SkillRating entity.DetailedRating `json:"skill_rating"`
	Title       string                `json:"title" validate:"max=100"`
	Comment     string                `json:"comment" validate:"max=1000"`
	Tags        []string              `json:"tags"`
}

func (r reviewRequest) input() usecase.ReviewInput {
	return usecase.ReviewInput{
		Rating:      r.Rating,
		SkillRating: r.SkillRating,
		Title:       r.Title,
		Comment:     r.Comment,
		Tags:        r.Tags,
	}
}

type voteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

type respondRequest struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

func reviewViews(reviews []*entity.Review) []entity.ReviewView {
	out := make([]entity.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.View())
	}
	return out
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Create(c.Request().Context(), currentUserID(c), c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review.View())
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Update(c.Request().Context(), currentUserID(c), c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review.View())
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	if err := h.reviewUseCase.Delete(c.Request().Context(), currentCaller(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) ReportReview(c echo.Context) error {
	review, err := h.reviewUseCase.Report(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review.View())
}

func (h *ReviewHandler) VoteReview(c echo.Context) error {
	var req voteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Vote(c.Request().Context(), currentUserID(c), c.Param("id"), *req.Helpful)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review.View())
}

func (h *ReviewHandler) RespondToReview(c echo.Context) error {
	var req respondRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Respond(c.Request().Context(), currentUserID(c), c.Param("id"), req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review.View())
}

func (h *ReviewHandler) GetUserReviews(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListForUser(c.Request().Context(), c.Param("id"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviewViews(reviews), total, p.Page, p.PageSize)
}
