package repository

import (
	"context"

	"swapskillz/internal/domain/entity"
)

type SwapRepository interface {
	Create(ctx context.Context, swap *entity.SkillSwap) error
	GetByID(ctx context.Context, id string) (*entity.SkillSwap, error)
	Update(ctx context.Context, swap *entity.SkillSwap) error
	// ListByUser returns swaps where userID is requester or provider,
	// most recently created first. An empty status matches every status.
	ListByUser(ctx context.Context, userID string, status entity.SwapStatus, limit, offset int) ([]*entity.SkillSwap, int64, error)

	CreateLog(ctx context.Context, log *entity.SwapLog) error
	// ListLogs returns the status history oldest first.
	ListLogs(ctx context.Context, swapID string) ([]*entity.SwapLog, error)
}
