package repository

import (
	"context"

	"swapskillz/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	// ListByReviewee returns non-hidden reviews newest first.
	ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error)
	// ListVisibleRatings returns the rating values of all non-hidden reviews for a user.
	ListVisibleRatings(ctx context.Context, revieweeID string) ([]int, error)
}
