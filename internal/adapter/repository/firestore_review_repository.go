package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) reviews() *firestore.CollectionRef {
	return r.client.Collection(reviewsCollection)
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if _, err := r.GetBySwapAndReviewer(ctx, review.SkillSwapID, review.ReviewerID); err == nil {
		return errors.Conflict("You have already reviewed this skill swap")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return err
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	if _, err := r.reviews().Doc(review.ID).Set(ctx, review); err != nil {
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return getDoc[entity.Review](ctx, r.reviews().Doc(id), "Review")
}

func (r *firestoreReviewRepository) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error) {
	iter := r.reviews().
		Where("skillSwapId", "==", swapID).
		Where("reviewerId", "==", reviewerID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Review", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	return &review, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()

	if _, err := r.reviews().Doc(review.ID).Set(ctx, review); err != nil {
		return errors.Internal("Failed to update review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.reviews().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("Review", err)
		}
		return errors.Internal("Failed to delete review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) visible(revieweeID string) firestore.Query {
	return r.reviews().
		Where("revieweeId", "==", revieweeID).
		Where("isHidden", "==", false)
}

func (r *firestoreReviewRepository) ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.visible(revieweeID).OrderBy("createdAt", firestore.Desc)

	reviews, total, err := queryPage[entity.Review](ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list reviews", err)
	}
	return reviews, total, nil
}

func (r *firestoreReviewRepository) ListVisibleRatings(ctx context.Context, revieweeID string) ([]int, error) {
	docs, err := r.visible(revieweeID).Select("rating").Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	ratings := make([]int, 0, len(docs))
	for _, doc := range docs {
		v, err := doc.DataAt("rating")
		if err != nil {
			return nil, errors.Internal("Failed to parse rating", err)
		}
		if n, ok := v.(int64); ok {
			ratings = append(ratings, int(n))
		}
	}
	return ratings, nil
}
