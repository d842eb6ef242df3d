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

const maxSkillDescription = 2000

type SkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewSkillUseCase(skillRepo repository.SkillRepository) *SkillUseCase {
	return &SkillUseCase{
		skillRepo: skillRepo,
	}
}

type SkillInput struct {
	Title       string
	Category    string
	Level       string
	Description string
	Location    entity.SkillLocation
}

func (in *SkillInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Category == "" {
		in.Category = entity.DefaultSkillCategory
	}
	if in.Level == "" {
		in.Level = entity.DefaultSkillLevel
	}

	switch {
	case utf8.RuneCountInString(in.Title) < 2:
		return errors.Validation("Title must be at least 2 characters")
	case !entity.IsValidCategory(in.Category):
		return errors.Validation("Invalid category: " + in.Category)
	case !entity.IsValidSkillLevel(in.Level):
		return errors.Validation("Invalid level: " + in.Level)
	case utf8.RuneCountInString(in.Description) > maxSkillDescription:
		return errors.Validation("Description cannot be more than 2000 characters")
	}
	return nil
}

func (uc *SkillUseCase) Create(ctx context.Context, userID string, input SkillInput) (*entity.Skill, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	skill := &entity.Skill{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Category:    input.Category,
		Level:       input.Level,
		Description: input.Description,
		Location:    input.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (uc *SkillUseCase) ListMine(ctx context.Context, userID string) ([]*entity.Skill, error) {
	return uc.skillRepo.ListByUser(ctx, userID)
}

type BrowseSkillsInput struct {
	Query    string
	Category string
	Level    string
	// ExcludeUserID hides the caller's own listings when set.
	ExcludeUserID string
}

func (uc *SkillUseCase) Browse(ctx context.Context, input BrowseSkillsInput, page, limit int) ([]*entity.Skill, int64, error) {
	offset := pageOffset(page, limit)

	filter := repository.SkillFilter{
		Query:         strings.TrimSpace(input.Query),
		Category:      input.Category,
		Level:         input.Level,
		ExcludeUserID: input.ExcludeUserID,
	}
	return uc.skillRepo.List(ctx, filter, limit, offset)
}

func (uc *SkillUseCase) owned(ctx context.Context, userID, skillID string) (*entity.Skill, error) {
	skill, err := uc.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill.UserID != userID {
		return nil, errors.Forbidden("Not authorized to modify this skill", nil)
	}
	return skill, nil
}

func (uc *SkillUseCase) Update(ctx context.Context, userID, skillID string, input SkillInput) (*entity.Skill, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	skill, err := uc.owned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}

	skill.Title = input.Title
	skill.Category = input.Category
	skill.Level = input.Level
	skill.Description = input.Description
	skill.Location = input.Location

	if err := uc.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (uc *SkillUseCase) Delete(ctx context.Context, userID, skillID string) error {
	if _, err := uc.owned(ctx, userID, skillID); err != nil {
		return err
	}
	return uc.skillRepo.Delete(ctx, skillID)
}
