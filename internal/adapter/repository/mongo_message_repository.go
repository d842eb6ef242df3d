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

type mongoMessageRepository struct {
	messages *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		messages: db.Collection(messagesCollection),
	}
}

func (r *mongoMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	if _, err := r.messages.InsertOne(ctx, message); err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *mongoMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var message entity.Message
	err := r.messages.FindOne(ctx, bson.M{"id": id}).Decode(&message)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("Message", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get message", err)
	}
	return &message, nil
}

func (r *mongoMessageRepository) Update(ctx context.Context, message *entity.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.messages.ReplaceOne(ctx, bson.M{"id": message.ID}, message, options.Replace().SetUpsert(false))
	if err != nil {
		return errors.Internal("Failed to update message", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Message", nil)
	}
	return nil
}

func (r *mongoMessageRepository) ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"senderId": userA, "recipientId": userB},
		bson.M{"senderId": userB, "recipientId": userA},
	}}

	messages, total, err := findPage[entity.Message](ctx, r.messages, filter, newestFirst(), limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list conversation", err)
	}
	return messages, total, nil
}

func (r *mongoMessageRepository) ListInbox(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	messages, total, err := findPage[entity.Message](ctx, r.messages, bson.M{"recipientId": userID}, newestFirst(), limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}
	return messages, total, nil
}

func (r *mongoMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// readAt is omitted until the message is read
	n, err := r.messages.CountDocuments(ctx, bson.M{"recipientId": userID, "readAt": bson.M{"$exists": false}})
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}
	return n, nil
}
