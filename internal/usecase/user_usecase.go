package usecase

import (
	"context"
	"io"
	"strings"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/infrastructure/storage"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/logger"
)

const (
	MaxAvatarSize = 5 << 20
	avatarFolder  = "avatars"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	storage  FileStorage
}

// NewUserUseCase accepts a nil storage; avatar uploads are then unavailable.
func NewUserUseCase(userRepo repository.UserRepository, fileStorage FileStorage) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		storage:  fileStorage,
	}
}

// GetPublicProfile hides deactivated accounts.
func (uc *UserUseCase) GetPublicProfile(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context, query, category string, page, limit int) ([]*entity.User, int64, error) {
	if category != "" && !entity.IsValidCategory(category) {
		return nil, 0, errors.Validation("Invalid category: " + category)
	}

	offset := pageOffset(page, limit)

	filter := repository.UserFilter{
		Query:      strings.TrimSpace(query),
		Category:   category,
		ActiveOnly: true,
	}
	return uc.userRepo.List(ctx, filter, limit, offset)
}

func (uc *UserUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, contentType string, size int64) (*entity.User, error) {
	if uc.storage == nil {
		return nil, errors.ServiceUnavailable("File storage is not configured")
	}
	if _, ok := storage.AllowedImageTypes[contentType]; !ok {
		return nil, errors.Validation("Avatar must be a JPEG, PNG or GIF image")
	}
	if size > MaxAvatarSize {
		return nil, errors.Validation("Avatar cannot be larger than 5MB")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := uc.storage.UploadImage(ctx, file, contentType, avatarFolder)
	if err != nil {
		return nil, errors.Internal("Failed to upload avatar", err)
	}

	previous := user.Avatar
	user.Avatar = url
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := uc.storage.DeleteFile(ctx, previous); err != nil {
			logger.Warn("Failed to delete old avatar %s: %v", previous, err)
		}
	}
	return user, nil
}

func (uc *UserUseCase) SetActive(ctx context.Context, adminID, userID string, active bool) (*entity.User, error) {
	if adminID == userID && !active {
		return nil, errors.BadRequest("You cannot deactivate your own account", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
