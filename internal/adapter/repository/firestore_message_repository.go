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

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) messages() *firestore.CollectionRef {
	return r.client.Collection(messagesCollection)
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	if _, err := r.messages().Doc(message.ID).Set(ctx, message); err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	return getDoc[entity.Message](ctx, r.messages().Doc(id), "Message")
}

func (r *firestoreMessageRepository) Update(ctx context.Context, message *entity.Message) error {
	if _, err := r.messages().Doc(message.ID).Set(ctx, message); err != nil {
		return errors.Internal("Failed to update message", err)
	}
	return nil
}

func (r *firestoreMessageRepository) ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error) {
	var merged []*entity.Message
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		query := r.messages().Where("senderId", "==", pair[0]).Where("recipientId", "==", pair[1])
		msgs, err := collectDocs[entity.Message](query.Documents(ctx))
		if err != nil {
			return nil, 0, errors.Internal("Failed to list conversation", err)
		}
		merged = append(merged, msgs...)
		if userA == userB {
			break
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return newerFirst(merged[i].CreatedAt, merged[j].CreatedAt, merged[i].ID, merged[j].ID)
	})

	start, end := utils.Window(len(merged), offset, limit)
	return merged[start:end], int64(len(merged)), nil
}

func (r *firestoreMessageRepository) ListInbox(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages().Where("recipientId", "==", userID).OrderBy("createdAt", firestore.Desc)

	messages, total, err := queryPage[entity.Message](ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}
	return messages, total, nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	msgs, err := collectDocs[entity.Message](r.messages().Where("recipientId", "==", userID).Documents(ctx))
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}

	var n int64
	for _, m := range msgs {
		if !m.IsRead() {
			n++
		}
	}
	return n, nil
}
