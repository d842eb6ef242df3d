package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type memorySkillRepository struct {
	mu     sync.RWMutex
	skills map[string]entity.Skill
}

func NewMemorySkillRepository() repository.SkillRepository {
	return &memorySkillRepository{
		skills: map[string]entity.Skill{},
	}
}

func (r *memorySkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	now := time.Now()
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = now
	}
	skill.UpdatedAt = now
	r.skills[skill.ID] = *skill
	return nil
}

func (r *memorySkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.skills[id]
	if !ok {
		return nil, errors.NotFound("Skill", nil)
	}
	return &s, nil
}

func (r *memorySkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.skills[skill.ID]; !ok {
		return errors.NotFound("Skill", nil)
	}
	skill.UpdatedAt = time.Now()
	r.skills[skill.ID] = *skill
	return nil
}

func (r *memorySkillRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.skills[id]; !ok {
		return errors.NotFound("Skill", nil)
	}
	delete(r.skills, id)
	return nil
}

func (r *memorySkillRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error) {
	r.mu.RLock()
	var out []*entity.Skill
	for _, s := range r.skills {
		if s.UserID == userID {
			s := s
			out = append(out, &s)
		}
	}
	r.mu.RUnlock()

	sortSkills(out)
	return out, nil
}

func (r *memorySkillRepository) List(ctx context.Context, filter repository.SkillFilter, limit, offset int) ([]*entity.Skill, int64, error) {
	r.mu.RLock()
	var matched []*entity.Skill
	for _, s := range r.skills {
		if MatchSkill(&s, filter) {
			s := s
			matched = append(matched, &s)
		}
	}
	r.mu.RUnlock()

	sortSkills(matched)
	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

// MatchSkill applies a SkillFilter in process.
func MatchSkill(s *entity.Skill, filter repository.SkillFilter) bool {
	if filter.ExcludeUserID != "" && s.UserID == filter.ExcludeUserID {
		return false
	}
	if filter.Category != "" && s.Category != filter.Category {
		return false
	}
	if filter.Level != "" && s.Level != filter.Level {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		return strings.Contains(strings.ToLower(s.Title), q) || strings.Contains(strings.ToLower(s.Description), q)
	}
	return true
}

func sortSkills(skills []*entity.Skill) {
	sort.Slice(skills, func(i, j int) bool {
		return newerFirst(skills[i].CreatedAt, skills[j].CreatedAt, skills[i].ID, skills[j].ID)
	})
}
