package repository

import (
	"context"

	"swapskillz/internal/domain/entity"
)

type SkillFilter struct {
	Query         string
	Category      string
	Level         string
	ExcludeUserID string
}

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	GetByID(ctx context.Context, id string) (*entity.Skill, error)
	Update(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error)
	List(ctx context.Context, filter SkillFilter, limit, offset int) ([]*entity.Skill, int64, error)
}
