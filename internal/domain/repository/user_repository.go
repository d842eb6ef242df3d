package repository

import (
	"context"

	"swapskillz/internal/domain/entity"
)

type UserFilter struct {
	// Query matches first name, last name or offered skill names, case-insensitively.
	Query string
	// Category matches users offering a skill in that category.
	Category   string
	ActiveOnly bool
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateRating writes only the rating aggregate.
	UpdateRating(ctx context.Context, id string, rating entity.Rating) error
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, int64, error)
}
