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

type memorySwapRepository struct {
	mu    sync.RWMutex
	swaps map[string]entity.SkillSwap
	logs  map[string][]entity.SwapLog
}

func NewMemorySwapRepository() repository.SwapRepository {
	return &memorySwapRepository{
		swaps: map[string]entity.SkillSwap{},
		logs:  map[string][]entity.SwapLog{},
	}
}

func (r *memorySwapRepository) Create(ctx context.Context, swap *entity.SkillSwap) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}
	now := time.Now()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	r.swaps[swap.ID] = cloneSwap(*swap)
	return nil
}

func (r *memorySwapRepository) GetByID(ctx context.Context, id string) (*entity.SkillSwap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.swaps[id]
	if !ok {
		return nil, errors.NotFound("Skill swap", nil)
	}
	out := cloneSwap(s)
	return &out, nil
}

func (r *memorySwapRepository) Update(ctx context.Context, swap *entity.SkillSwap) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.swaps[swap.ID]; !ok {
		return errors.NotFound("Skill swap", nil)
	}
	r.swaps[swap.ID] = cloneSwap(*swap)
	return nil
}

func (r *memorySwapRepository) ListByUser(ctx context.Context, userID string, status entity.SwapStatus, limit, offset int) ([]*entity.SkillSwap, int64, error) {
	r.mu.RLock()
	var matched []*entity.SkillSwap
	for _, s := range r.swaps {
		if !s.IsParty(userID) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out := cloneSwap(s)
		matched = append(matched, &out)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (r *memorySwapRepository) CreateLog(ctx context.Context, log *entity.SwapLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.logs[log.SwapID] = append(r.logs[log.SwapID], *log)
	return nil
}

func (r *memorySwapRepository) ListLogs(ctx context.Context, swapID string) ([]*entity.SwapLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]*entity.SwapLog, 0, len(r.logs[swapID]))
	for _, l := range r.logs[swapID] {
		l := l
		logs = append(logs, &l)
	}
	return logs, nil
}

func cloneSwap(s entity.SkillSwap) entity.SkillSwap {
	s.Schedule = append([]entity.ScheduleSlot(nil), s.Schedule...)
	s.Milestones = append([]entity.Milestone(nil), s.Milestones...)
	s.Tags = append([]string(nil), s.Tags...)
	return s
}
