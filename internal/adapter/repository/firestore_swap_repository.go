package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type firestoreSwapRepository struct {
	client *firestore.Client
}

func NewFirestoreSwapRepository(client *firestore.Client) repository.SwapRepository {
	return &firestoreSwapRepository{
		client: client,
	}
}

func (r *firestoreSwapRepository) swaps() *firestore.CollectionRef {
	return r.client.Collection(swapsCollection)
}

func (r *firestoreSwapRepository) Create(ctx context.Context, swap *entity.SkillSwap) error {
	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}
	now := time.Now()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	if _, err := r.swaps().Doc(swap.ID).Set(ctx, swap); err != nil {
		return errors.Internal("Failed to create skill swap", err)
	}
	return nil
}

func (r *firestoreSwapRepository) GetByID(ctx context.Context, id string) (*entity.SkillSwap, error) {
	return getDoc[entity.SkillSwap](ctx, r.swaps().Doc(id), "Skill swap")
}

func (r *firestoreSwapRepository) Update(ctx context.Context, swap *entity.SkillSwap) error {
	if _, err := r.swaps().Doc(swap.ID).Set(ctx, swap); err != nil {
		return errors.Internal("Failed to update skill swap", err)
	}
	return nil
}

// ListByUser runs one query per party field and merges the results,
// since Firestore cannot OR across two fields here.
func (r *firestoreSwapRepository) ListByUser(ctx context.Context, userID string, status entity.SwapStatus, limit, offset int) ([]*entity.SkillSwap, int64, error) {
	seen := map[string]bool{}
	var merged []*entity.SkillSwap

	for _, field := range []string{"requesterId", "providerId"} {
		query := r.swaps().Where(field, "==", userID)
		if status != "" {
			query = query.Where("status", "==", string(status))
		}

		swaps, err := collectDocs[entity.SkillSwap](query.Documents(ctx))
		if err != nil {
			return nil, 0, errors.Internal("Failed to list skill swaps", err)
		}
		for _, s := range swaps {
			if !seen[s.ID] {
				seen[s.ID] = true
				merged = append(merged, s)
			}
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return newerFirst(merged[i].CreatedAt, merged[j].CreatedAt, merged[i].ID, merged[j].ID)
	})

	start, end := utils.Window(len(merged), offset, limit)
	return merged[start:end], int64(len(merged)), nil
}

func (r *firestoreSwapRepository) logs(swapID string) *firestore.CollectionRef {
	return r.swaps().Doc(swapID).Collection("history")
}

func (r *firestoreSwapRepository) CreateLog(ctx context.Context, log *entity.SwapLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	if _, err := r.logs(log.SwapID).Doc(log.ID).Set(ctx, log); err != nil {
		return errors.Internal("Failed to save swap history", err)
	}
	return nil
}

func (r *firestoreSwapRepository) ListLogs(ctx context.Context, swapID string) ([]*entity.SwapLog, error) {
	logs, err := collectDocs[entity.SwapLog](r.logs(swapID).OrderBy("createdAt", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, errors.Internal("Failed to list swap history", err)
	}
	return logs, nil
}
