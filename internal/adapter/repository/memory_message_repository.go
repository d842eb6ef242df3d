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

type memoryMessageRepository struct {
	mu       sync.RWMutex
	messages map[string]entity.Message
}

func NewMemoryMessageRepository() repository.MessageRepository {
	return &memoryMessageRepository{
		messages: map[string]entity.Message{},
	}
}

func (r *memoryMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ID] = *message
	return nil
}

func (r *memoryMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, errors.NotFound("Message", nil)
	}
	return &m, nil
}

func (r *memoryMessageRepository) Update(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[message.ID]; !ok {
		return errors.NotFound("Message", nil)
	}
	r.messages[message.ID] = *message
	return nil
}

func (r *memoryMessageRepository) ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error) {
	return r.list(func(m *entity.Message) bool {
		return (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA)
	}, limit, offset)
}

func (r *memoryMessageRepository) ListInbox(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	return r.list(func(m *entity.Message) bool {
		return m.RecipientID == userID
	}, limit, offset)
}

func (r *memoryMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, m := range r.messages {
		if m.RecipientID == userID && m.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memoryMessageRepository) list(match func(*entity.Message) bool, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.RLock()
	var matched []*entity.Message
	for _, m := range r.messages {
		if match(&m) {
			m := m
			matched = append(matched, &m)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}
