package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
)

type mongoSkillRepository struct {
	skills *mongo.Collection
}

func NewMongoSkillRepository(db *mongo.Database) repository.SkillRepository {
	return &mongoSkillRepository{
		skills: db.Collection(skillsCollection),
	}
}

func (r *mongoSkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	now := time.Now()
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = now
	}
	skill.UpdatedAt = now

	if _, err := r.skills.InsertOne(ctx, skill); err != nil {
		return errors.Internal("Failed to create skill", err)
	}
	return nil
}

func (r *mongoSkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var skill entity.Skill
	err := r.skills.FindOne(ctx, bson.M{"id": id}).Decode(&skill)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("Skill", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get skill", err)
	}
	return &skill, nil
}

func (r *mongoSkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	skill.UpdatedAt = time.Now()
	res, err := r.skills.ReplaceOne(ctx, bson.M{"id": skill.ID}, skill, options.Replace().SetUpsert(false))
	if err != nil {
		return errors.Internal("Failed to update skill", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Skill", nil)
	}
	return nil
}

func (r *mongoSkillRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.skills.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Internal("Failed to delete skill", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Skill", nil)
	}
	return nil
}

func (r *mongoSkillRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	skills, err := findAll[entity.Skill](ctx, r.skills, bson.M{"userId": userID}, options.Find().SetSort(newestFirst()))
	if err != nil {
		return nil, errors.Internal("Failed to list skills", err)
	}
	return skills, nil
}

func (r *mongoSkillRepository) List(ctx context.Context, filter repository.SkillFilter, limit, offset int) ([]*entity.Skill, int64, error) {
	query := bson.M{}
	if filter.ExcludeUserID != "" {
		query["userId"] = bson.M{"$ne": filter.ExcludeUserID}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	skills, total, err := findPage[entity.Skill](ctx, r.skills, query, newestFirst(), limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list skills", err)
	}
	return skills, total, nil
}
