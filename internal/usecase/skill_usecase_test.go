package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapskillz/internal/domain/entity"
	"swapskillz/pkg/errors"
)

func TestSkillUseCase_CreateDefaults(t *testing.T) {
	uc := NewSkillUseCase(newRepos().skills)

	skill, err := uc.Create(context.Background(), "alice", SkillInput{Title: "  Sourdough  "})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", skill.Title)
	assert.Equal(t, entity.DefaultSkillCategory, skill.Category)
	assert.Equal(t, entity.DefaultSkillLevel, skill.Level)
	assert.Equal(t, "alice", skill.UserID)
}

func TestSkillUseCase_Validation(t *testing.T) {
	uc := NewSkillUseCase(newRepos().skills)
	ctx := context.Background()

	for name, input := range map[string]SkillInput{
		"short title":      {Title: "x"},
		"short multibyte":  {Title: "日"},
		"bad category":     {Title: "Go", Category: "Juggling"},
		"bad level":        {Title: "Go", Level: "Wizard"},
		"long description": {Title: "Go", Description: strings.Repeat("語", maxSkillDescription+1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, "alice", input)
			assert.True(t, errors.Is(err, errors.CodeValidation))
		})
	}
}

func TestSkillUseCase_LimitsCountCharacters(t *testing.T) {
	uc := NewSkillUseCase(newRepos().skills)

	skill, err := uc.Create(context.Background(), "alice", SkillInput{
		Title:       "日本",
		Description: strings.Repeat("語", maxSkillDescription),
	})
	require.NoError(t, err)
	assert.Equal(t, "日本", skill.Title)
}

func TestSkillUseCase_Browse(t *testing.T) {
	uc := NewSkillUseCase(newRepos().skills)
	ctx := context.Background()

	_, err := uc.Create(ctx, "alice", SkillInput{Title: "Go programming", Category: "Technology", Level: "Expert"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "bob", SkillInput{Title: "Jazz guitar", Category: "Music", Level: "Beginner"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "bob", SkillInput{Title: "Rust", Category: "Technology", Level: "Advanced", Description: "systems programming"})
	require.NoError(t, err)

	skills, total, err := uc.Browse(ctx, BrowseSkillsInput{Category: "Technology"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, skills, 2)

	skills, _, err = uc.Browse(ctx, BrowseSkillsInput{Query: "PROGRAMMING", ExcludeUserID: "alice"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Rust", skills[0].Title)

	skills, total, err = uc.Browse(ctx, BrowseSkillsInput{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, skills, 1)

	mine, err := uc.ListMine(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestSkillUseCase_OwnerOnly(t *testing.T) {
	uc := NewSkillUseCase(newRepos().skills)
	ctx := context.Background()

	skill, err := uc.Create(ctx, "alice", SkillInput{Title: "Go", Category: "Technology"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "bob", skill.ID, SkillInput{Title: "Hijacked"})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.True(t, errors.Is(uc.Delete(ctx, "bob", skill.ID), errors.CodeForbidden))

	updated, err := uc.Update(ctx, "alice", skill.ID, SkillInput{Title: "Go concurrency", Category: "Technology", Level: "Expert"})
	require.NoError(t, err)
	assert.Equal(t, "Go concurrency", updated.Title)

	require.NoError(t, uc.Delete(ctx, "alice", skill.ID))
	_, err = uc.Update(ctx, "alice", skill.ID, SkillInput{Title: "Again"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
