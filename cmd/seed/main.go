package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianvoe/gofakeit/v6"

	"swapskillz/internal/adapter/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/infrastructure/auth"
	"swapskillz/internal/seed"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/config"
	"swapskillz/pkg/logger"
)

func main() {
	users := flag.Int("users", 20, "number of members to create")
	swaps := flag.Int("swaps", 2, "swaps requested by each member")
	password := flag.String("password", seed.DefaultPassword, "password for every seeded member")
	admin := flag.Bool("admin", true, "promote the first member to admin")
	fakerSeed := flag.Uint64("seed", 0, "faker seed, 0 for random")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Environment, cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Error("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Store.Type == config.StoreMemory {
		logger.Warn("STORE_TYPE is memory; seeded data is discarded on exit")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.Store.Type, err)
	}
	defer store.Close()

	tokens := auth.NewJWTService(cfg.JWT)
	authUseCase := usecase.NewAuthUseCase(store.Users, tokens, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewInMemoryTokenBlacklist())
	ratings := usecase.NewRatingAggregator(store.Reviews, store.Users, nil)
	lifecycle := service.NewSwapLifecycle(service.NewAccessGuard())

	seeder := seed.NewSeeder(
		authUseCase,
		usecase.NewSkillUseCase(store.Skills),
		usecase.NewSwapUseCase(store.Swaps, store.Users, lifecycle, nil, nil),
		usecase.NewReviewUseCase(store.Reviews, store.Swaps, ratings),
		store.Users,
		gofakeit.New(int64(*fakerSeed)),
	)

	if _, err := seeder.Run(ctx, seed.Options{
		Users:    *users,
		Swaps:    *swaps,
		Password: *password,
		Admin:    *admin,
	}); err != nil {
		logger.Fatal("Seeding failed: %v", err)
	}
}
