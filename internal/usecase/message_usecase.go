package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
)

const (
	maxMessageLength = 2000

	EventMessage = "message"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	swapRepo    repository.SwapRepository
	notifier    Notifier
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	swapRepo repository.SwapRepository,
	notifier Notifier,
) *MessageUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &MessageUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		swapRepo:    swapRepo,
		notifier:    notifier,
	}
}

type SendMessageInput struct {
	RecipientID string
	Content     string
	SwapID      string
}

// CanMessage applies the recipient rules shared by persisted messages and
// realtime frames such as typing indicators.
func (uc *MessageUseCase) CanMessage(ctx context.Context, senderID, recipientID string) error {
	if recipientID == senderID {
		return errors.BadRequest("You cannot message yourself", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}
	if !recipient.IsActive {
		return errors.NotFound("Recipient", nil)
	}
	if !recipient.Preferences.AllowMessages {
		return errors.Forbidden("This user is not accepting messages", nil)
	}
	return nil
}

func (uc *MessageUseCase) Send(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Validation("Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, errors.Validation("Message cannot be more than 2000 characters")
	}
	if err := uc.CanMessage(ctx, senderID, input.RecipientID); err != nil {
		return nil, err
	}

	if input.SwapID != "" {
		swap, err := uc.swapRepo.GetByID(ctx, input.SwapID)
		if err != nil {
			return nil, err
		}
		if !swap.IsParty(senderID) || !swap.IsParty(input.RecipientID) {
			return nil, errors.Forbidden("Both users must be participants of the skill swap", nil)
		}
	}

	message := &entity.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		SwapID:      input.SwapID,
		Content:     content,
		CreatedAt:   time.Now(),
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifier.Notify(message.RecipientID, EventMessage, message)
	return message, nil
}

func (uc *MessageUseCase) Conversation(ctx context.Context, userID, otherID string, page, limit int) ([]*entity.Message, int64, error) {
	return uc.messageRepo.ListConversation(ctx, userID, otherID, limit, pageOffset(page, limit))
}

func (uc *MessageUseCase) Inbox(ctx context.Context, userID string, page, limit int) ([]*entity.Message, int64, error) {
	return uc.messageRepo.ListInbox(ctx, userID, limit, pageOffset(page, limit))
}

// MarkRead is idempotent; only the recipient may mark a message read.
func (uc *MessageUseCase) MarkRead(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.RecipientID != userID {
		return nil, errors.Forbidden("Only the recipient can mark this message as read", nil)
	}
	if message.IsRead() {
		return message, nil
	}

	now := time.Now()
	message.ReadAt = &now
	if err := uc.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (uc *MessageUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

func pageOffset(page, limit int) int {
	offset := (page - 1) * limit
	if offset < 0 {
		return 0
	}
	return offset
}
