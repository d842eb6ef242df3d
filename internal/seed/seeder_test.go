package seed

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"swapskillz/internal/adapter/repository"
	"swapskillz/internal/domain/entity"
	domainrepo "swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/infrastructure/auth"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/config"
)

func newTestSeeder(store *repository.Store) *Seeder {
	tokens := auth.NewJWTService(config.JWTConfig{Secret: "seed", Expiry: time.Hour, Issuer: "seed"})
	authUC := usecase.NewAuthUseCase(store.Users, tokens, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewInMemoryTokenBlacklist())
	ratings := usecase.NewRatingAggregator(store.Reviews, store.Users, nil)
	lifecycle := service.NewSwapLifecycle(service.NewAccessGuard())

	return NewSeeder(
		authUC,
		usecase.NewSkillUseCase(store.Skills),
		usecase.NewSwapUseCase(store.Swaps, store.Users, lifecycle, nil, nil),
		usecase.NewReviewUseCase(store.Reviews, store.Swaps, ratings),
		store.Users,
		gofakeit.New(42),
	)
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	result, err := newTestSeeder(store).Run(ctx, Options{Users: 4, Swaps: 2, Admin: true})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Users)
	assert.Equal(t, 8, result.Swaps)
	// one of every two swaps per user is completed and reviewed by both sides
	assert.Equal(t, 8, result.Reviews)
	assert.GreaterOrEqual(t, result.Skills, 4)

	users, total, err := store.Users.List(ctx, domainrepo.UserFilter{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	admins := 0
	for _, u := range users {
		if u.IsAdmin() {
			admins++
		}
		assert.Greater(t, u.Rating.Count, 0, u.Email)
		assert.GreaterOrEqual(t, u.Rating.Average, 3.0)
	}
	assert.Equal(t, 1, admins)

	swaps, _, err := store.Swaps.ListByUser(ctx, users[0].ID, "", 20, 0)
	require.NoError(t, err)
	completed := 0
	for _, s := range swaps {
		if s.Status == entity.SwapStatusCompleted {
			completed++
		}
	}
	assert.Positive(t, completed)
}

func TestSeeder_SeededUsersCanLogIn(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seeder := newTestSeeder(store)

	_, err := seeder.Run(ctx, Options{Users: 2, Swaps: 1})
	require.NoError(t, err)

	users, _, err := store.Users.List(ctx, domainrepo.UserFilter{}, 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, users)

	res, err := seeder.auth.Login(ctx, users[0].Email, DefaultPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestSeeder_NeedsTwoUsers(t *testing.T) {
	_, err := newTestSeeder(repository.NewMemoryStore()).Run(context.Background(), Options{Users: 1})
	assert.Error(t, err)
}
