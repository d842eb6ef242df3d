package usecase

import (
	"context"

	"go.uber.org/zap"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/pkg/logger"
)

// RatingAggregator keeps User.Rating in step with the user's visible reviews.
type RatingAggregator struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	metrics    RatingMetrics
}

func NewRatingAggregator(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, metrics RatingMetrics) *RatingAggregator {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &RatingAggregator{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		metrics:    metrics,
	}
}

// Recompute derives the aggregate from scratch and writes it to the user.
func (a *RatingAggregator) Recompute(ctx context.Context, revieweeID string) (entity.Rating, error) {
	ratings, err := a.reviewRepo.ListVisibleRatings(ctx, revieweeID)
	if err != nil {
		return entity.Rating{}, err
	}

	rating := service.ComputeRating(ratings)
	if err := a.userRepo.UpdateRating(ctx, revieweeID, rating); err != nil {
		return entity.Rating{}, err
	}
	return rating, nil
}

// RecomputeAfterWrite runs after a review write has been persisted. A
// failure here is logged and counted; the review write stands.
func (a *RatingAggregator) RecomputeAfterWrite(ctx context.Context, revieweeID string) {
	if _, err := a.Recompute(ctx, revieweeID); err != nil {
		a.metrics.RatingRecomputeFailed()
		logger.L().Warn("failed to recompute user rating",
			zap.String("user_id", revieweeID),
			zap.Error(err),
		)
	}
}
