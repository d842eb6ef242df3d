package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]entity.Review
}

func NewMemoryReviewRepository() repository.ReviewRepository {
	return &memoryReviewRepository{
		reviews: map[string]entity.Review{},
	}
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.SkillSwapID == review.SkillSwapID && existing.ReviewerID == review.ReviewerID {
			return errors.Conflict("You have already reviewed this skill swap")
		}
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	r.reviews[review.ID] = cloneReview(*review)
	return nil
}

func (r *memoryReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	out := cloneReview(rv)
	return &out, nil
}

func (r *memoryReviewRepository) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.SkillSwapID == swapID && rv.ReviewerID == reviewerID {
			out := cloneReview(rv)
			return &out, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memoryReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = cloneReview(*review)
	return nil
}

func (r *memoryReviewRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memoryReviewRepository) ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.RLock()
	var matched []*entity.Review
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID && !rv.IsHidden {
			out := cloneReview(rv)
			matched = append(matched, &out)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (r *memoryReviewRepository) ListVisibleRatings(ctx context.Context, revieweeID string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ratings []int
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID && !rv.IsHidden {
			ratings = append(ratings, rv.Rating)
		}
	}
	return ratings, nil
}

func cloneReview(rv entity.Review) entity.Review {
	rv.Tags = append([]string(nil), rv.Tags...)
	rv.VotedBy = append([]entity.Vote(nil), rv.VotedBy...)
	if rv.Response != nil {
		resp := *rv.Response
		rv.Response = &resp
	}
	return rv
}
