package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
)

type mongoReviewRepository struct {
	reviews *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		reviews: db.Collection(reviewsCollection),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("You have already reviewed this skill swap")
		}
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoReviewRepository) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"skillSwapId": swapID, "reviewerId": reviewerID})
}

func (r *mongoReviewRepository) findOne(ctx context.Context, filter bson.M) (*entity.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var review entity.Review
	err := r.reviews.FindOne(ctx, filter).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("Review", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get review", err)
	}
	return &review, nil
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	review.UpdatedAt = time.Now()
	res, err := r.reviews.ReplaceOne(ctx, bson.M{"id": review.ID}, review, options.Replace().SetUpsert(false))
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.reviews.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Internal("Failed to delete review", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *mongoReviewRepository) ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error) {
	filter := bson.M{"revieweeId": revieweeID, "isHidden": false}

	reviews, total, err := findPage[entity.Review](ctx, r.reviews, filter, newestFirst(), limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list reviews", err)
	}
	return reviews, total, nil
}

func (r *mongoReviewRepository) ListVisibleRatings(ctx context.Context, revieweeID string) ([]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"rating": 1})
	docs, err := findAll[struct {
		Rating int `bson:"rating"`
	}](ctx, r.reviews, bson.M{"revieweeId": revieweeID, "isHidden": false}, opts)
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	ratings := make([]int, 0, len(docs))
	for _, d := range docs {
		ratings = append(ratings, d.Rating)
	}
	return ratings, nil
}
