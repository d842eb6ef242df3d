package repository

import (
	"context"

	"swapskillz/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	// ListConversation returns messages between two users, newest first.
	ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error)
	// ListInbox returns messages received by userID, newest first.
	ListInbox(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}
