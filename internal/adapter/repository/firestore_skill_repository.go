package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type firestoreSkillRepository struct {
	client *firestore.Client
}

func NewFirestoreSkillRepository(client *firestore.Client) repository.SkillRepository {
	return &firestoreSkillRepository{
		client: client,
	}
}

func (r *firestoreSkillRepository) skills() *firestore.CollectionRef {
	return r.client.Collection(skillsCollection)
}

func (r *firestoreSkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	now := time.Now()
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = now
	}
	skill.UpdatedAt = now

	if _, err := r.skills().Doc(skill.ID).Set(ctx, skill); err != nil {
		return errors.Internal("Failed to create skill", err)
	}
	return nil
}

func (r *firestoreSkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	return getDoc[entity.Skill](ctx, r.skills().Doc(id), "Skill")
}

func (r *firestoreSkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	skill.UpdatedAt = time.Now()
	if _, err := r.skills().Doc(skill.ID).Set(ctx, skill); err != nil {
		return errors.Internal("Failed to update skill", err)
	}
	return nil
}

func (r *firestoreSkillRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.skills().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("Skill", err)
		}
		return errors.Internal("Failed to delete skill", err)
	}
	return nil
}

func (r *firestoreSkillRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error) {
	query := r.skills().Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	skills, err := collectDocs[entity.Skill](query.Documents(ctx))
	if err != nil {
		return nil, errors.Internal("Failed to list skills", err)
	}
	return skills, nil
}

// List narrows by category and level in the query; text search and the
// owner exclusion run in process.
func (r *firestoreSkillRepository) List(ctx context.Context, filter repository.SkillFilter, limit, offset int) ([]*entity.Skill, int64, error) {
	query := r.skills().Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level", "==", filter.Level)
	}

	all, err := collectDocs[entity.Skill](query.Documents(ctx))
	if err != nil {
		return nil, 0, errors.Internal("Failed to list skills", err)
	}

	var matched []*entity.Skill
	for _, s := range all {
		if MatchSkill(s, filter) {
			matched = append(matched, s)
		}
	}
	sortSkills(matched)

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}
