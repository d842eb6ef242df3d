package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"swapskillz/internal/domain/repository"
	"swapskillz/internal/infrastructure/firebase"
	"swapskillz/pkg/config"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users    repository.UserRepository
	Skills   repository.SkillRepository
	Swaps    repository.SwapRepository
	Reviews  repository.ReviewRepository
	Messages repository.MessageRepository

	// Ping is nil for backends without a connection to check.
	Ping  func(ctx context.Context) error
	close func() error
}

// OpenStore connects the backend named by cfg.Store.Type.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Type {
	case config.StoreMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		return &Store{
			Users:    NewMongoUserRepository(db),
			Skills:   NewMongoSkillRepository(db),
			Swaps:    NewMongoSwapRepository(db),
			Reviews:  NewMongoReviewRepository(db),
			Messages: NewMongoMessageRepository(db),
			Ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:    func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.StoreFirestore:
		client, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, firebase.ClientOptions(cfg.Firebase)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		return &Store{
			Users:    NewFirestoreUserRepository(client),
			Skills:   NewFirestoreSkillRepository(client),
			Swaps:    NewFirestoreSwapRepository(client),
			Reviews:  NewFirestoreReviewRepository(client),
			Messages: NewFirestoreMessageRepository(client),
			close:    client.Close,
		}, nil

	case config.StoreMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Users:    NewMemoryUserRepository(),
		Skills:   NewMemorySkillRepository(),
		Swaps:    NewMemorySwapRepository(),
		Reviews:  NewMemoryReviewRepository(),
		Messages: NewMemoryMessageRepository(),
	}
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
