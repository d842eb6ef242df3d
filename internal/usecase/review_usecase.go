package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/pkg/errors"
)

const (
	maxReviewTitle    = 100
	maxReviewComment  = 1000
	maxReviewResponse = 500

	autoHideNote = "Auto-hidden due to multiple reports"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	swapRepo   repository.SwapRepository
	ratings    *RatingAggregator
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	swapRepo repository.SwapRepository,
	ratings *RatingAggregator,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		swapRepo:   swapRepo,
		ratings:    ratings,
	}
}

type ReviewInput struct {
	Rating      int
	SkillRating entity.DetailedRating
	Title       string
	Comment     string
	Tags        []string
}

func (in *ReviewInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Comment = strings.TrimSpace(in.Comment)

	if in.Rating < 1 || in.Rating > 5 {
		return errors.Validation("Rating must be between 1 and 5")
	}
	for _, v := range in.SkillRating.Present() {
		if v < 1 || v > 5 {
			return errors.Validation("Detailed ratings must be between 1 and 5")
		}
	}
	if utf8.RuneCountInString(in.Title) > maxReviewTitle {
		return errors.Validation("Title cannot be more than 100 characters")
	}
	if utf8.RuneCountInString(in.Comment) > maxReviewComment {
		return errors.Validation("Comment cannot be more than 1000 characters")
	}
	for _, tag := range in.Tags {
		if !isReviewTag(tag) {
			return errors.Validation("Invalid review tag: " + tag)
		}
	}
	return nil
}

func isReviewTag(tag string) bool {
	for _, t := range entity.ReviewTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Create records reviewerID's review of the other party of a completed swap.
func (uc *ReviewUseCase) Create(ctx context.Context, reviewerID, swapID string, input ReviewInput) (*entity.Review, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(reviewerID) {
		return nil, errors.Forbidden("Only participants can review this skill swap", nil)
	}
	if swap.Status != entity.SwapStatusCompleted {
		return nil, errors.BadRequest("Only completed skill swaps can be reviewed", nil)
	}

	revieweeID := swap.Counterpart(reviewerID)
	reviewType := entity.ReviewTypeSkillLearner
	if revieweeID == swap.ProviderID {
		reviewType = entity.ReviewTypeSkillProvider
	}

	now := time.Now()
	review := &entity.Review{
		ID:          uuid.New().String(),
		SkillSwapID: swap.ID,
		ReviewerID:  reviewerID,
		RevieweeID:  revieweeID,
		Rating:      input.Rating,
		SkillRating: input.SkillRating,
		Title:       input.Title,
		Comment:     input.Comment,
		Type:        reviewType,
		Tags:        append([]string{}, input.Tags...),
		VotedBy:     []entity.Vote{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	review.Verify(now)

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.ratings.RecomputeAfterWrite(ctx, revieweeID)
	return review, nil
}

func (uc *ReviewUseCase) Get(ctx context.Context, id string) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(ctx, id)
}

func (uc *ReviewUseCase) Update(ctx context.Context, reviewerID, reviewID string, input ReviewInput) (*entity.Review, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != reviewerID {
		return nil, errors.Forbidden("Not authorized to update this review", nil)
	}

	review.Rating = input.Rating
	review.SkillRating = input.SkillRating
	review.Title = input.Title
	review.Comment = input.Comment
	review.Tags = append([]string{}, input.Tags...)
	review.Verify(time.Now())

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.ratings.RecomputeAfterWrite(ctx, review.RevieweeID)
	return review, nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, caller service.Caller, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ReviewerID != caller.ID && !caller.IsAdmin() {
		return errors.Forbidden("Not authorized to delete this review", nil)
	}

	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	uc.ratings.RecomputeAfterWrite(ctx, review.RevieweeID)
	return nil
}

// Report flags a review. Enough reports hide it from listings and from
// the reviewee's rating.
func (uc *ReviewUseCase) Report(ctx context.Context, reporterID, reviewID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID == reporterID {
		return nil, errors.BadRequest("Cannot report your own review", nil)
	}

	review.IsReported = true
	review.ReportCount++
	if review.ReportCount >= entity.ReportHideThreshold && !review.IsHidden {
		review.IsHidden = true
		review.ModerationNotes = autoHideNote
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.ratings.RecomputeAfterWrite(ctx, review.RevieweeID)
	return review, nil
}

func (uc *ReviewUseCase) Moderate(ctx context.Context, caller service.Caller, reviewID string, hidden bool, notes string) (*entity.Review, error) {
	if !caller.IsAdmin() {
		return nil, errors.Forbidden("Admin access required", nil)
	}

	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.IsHidden = hidden
	if notes = strings.TrimSpace(notes); notes != "" {
		review.ModerationNotes = notes
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.ratings.RecomputeAfterWrite(ctx, review.RevieweeID)
	return review, nil
}

// Vote replaces any earlier vote by userID.
func (uc *ReviewUseCase) Vote(ctx context.Context, userID, reviewID string, helpful bool) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID == userID {
		return nil, errors.BadRequest("Cannot vote on your own review", nil)
	}

	review.CastVote(userID, helpful)

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) Respond(ctx context.Context, userID, reviewID, comment string) (*entity.Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, errors.Validation("Response comment is required")
	}
	if utf8.RuneCountInString(comment) > maxReviewResponse {
		return nil, errors.Validation("Response cannot be more than 500 characters")
	}

	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.RevieweeID != userID {
		return nil, errors.Forbidden("Only the reviewed user can respond to this review", nil)
	}

	review.Response = &entity.ReviewResponse{
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) ListForUser(ctx context.Context, userID string, page, limit int) ([]*entity.Review, int64, error) {
	offset := pageOffset(page, limit)
	return uc.reviewRepo.ListByReviewee(ctx, userID, limit, offset)
}
