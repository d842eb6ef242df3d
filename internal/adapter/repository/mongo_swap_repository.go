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

type mongoSwapRepository struct {
	swaps *mongo.Collection
	logs  *mongo.Collection
}

func NewMongoSwapRepository(db *mongo.Database) repository.SwapRepository {
	return &mongoSwapRepository{
		swaps: db.Collection(swapsCollection),
		logs:  db.Collection(swapLogsCollection),
	}
}

func (r *mongoSwapRepository) Create(ctx context.Context, swap *entity.SkillSwap) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}
	now := time.Now()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	if _, err := r.swaps.InsertOne(ctx, swap); err != nil {
		return errors.Internal("Failed to create skill swap", err)
	}
	return nil
}

func (r *mongoSwapRepository) GetByID(ctx context.Context, id string) (*entity.SkillSwap, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var swap entity.SkillSwap
	err := r.swaps.FindOne(ctx, bson.M{"id": id}).Decode(&swap)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("Skill swap", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get skill swap", err)
	}
	return &swap, nil
}

func (r *mongoSwapRepository) Update(ctx context.Context, swap *entity.SkillSwap) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.swaps.ReplaceOne(ctx, bson.M{"id": swap.ID}, swap, options.Replace().SetUpsert(false))
	if err != nil {
		return errors.Internal("Failed to update skill swap", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Skill swap", nil)
	}
	return nil
}

func (r *mongoSwapRepository) ListByUser(ctx context.Context, userID string, status entity.SwapStatus, limit, offset int) ([]*entity.SkillSwap, int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"requesterId": userID},
		bson.M{"providerId": userID},
	}}
	if status != "" {
		filter["status"] = status
	}

	swaps, total, err := findPage[entity.SkillSwap](ctx, r.swaps, filter, newestFirst(), limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list skill swaps", err)
	}
	return swaps, total, nil
}

func (r *mongoSwapRepository) CreateLog(ctx context.Context, log *entity.SwapLog) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	if _, err := r.logs.InsertOne(ctx, log); err != nil {
		return errors.Internal("Failed to save swap history", err)
	}
	return nil
}

func (r *mongoSwapRepository) ListLogs(ctx context.Context, swapID string) ([]*entity.SwapLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	logs, err := findAll[entity.SwapLog](ctx, r.logs, bson.M{"swapId": swapID}, opts)
	if err != nil {
		return nil, errors.Internal("Failed to list swap history", err)
	}
	return logs, nil
}
