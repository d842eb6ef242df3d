package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"swapskillz/internal/adapter/api"
	"swapskillz/internal/adapter/api/handler"
	apimiddleware "swapskillz/internal/adapter/api/middleware"
	"swapskillz/internal/adapter/api/router"
	"swapskillz/internal/adapter/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/infrastructure/auth"
	"swapskillz/internal/infrastructure/firebase"
	"swapskillz/internal/infrastructure/metrics"
	"swapskillz/internal/infrastructure/storage"
	"swapskillz/internal/infrastructure/websocket"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/config"
	"swapskillz/pkg/logger"
	"swapskillz/pkg/response"
)

func main() {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]handler.Pinger{}

	var app *fbapp.App
	if cfg.UsesFirebase() {
		app, err = firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase: %v", err)
		}
	}

	store, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.Store.Type, err)
	}
	defer store.Close()
	if store.Ping != nil {
		health[cfg.Store.Type] = store.Ping
	}
	if cfg.Store.Type == config.StoreMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
	} else {
		logger.Info("Using %s store", cfg.Store.Type)
	}

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Addr != "" {
		redisClient, err := auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("%v", err)
		}
		defer redisClient.Close()

		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		health["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		logger.Warn("REDIS_ADDR not set; revoked tokens are kept in memory")
	}

	var fileStorage usecase.FileStorage
	if cfg.Firebase.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.Firebase.StorageBucket, cfg.Firebase.ServiceAccountPath)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		fileStorage = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET not set; avatar uploads are disabled")
	}

	registry := metrics.NewRegistry()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	tokens := auth.NewJWTService(cfg.JWT)
	authUseCase := usecase.NewAuthUseCase(store.Users, tokens, auth.NewBcryptHasher(cfg.BcryptCost), blacklist)
	if cfg.Firebase.AuthEnabled {
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase Auth: %v", err)
		}
		authUseCase.WithFirebase(firebase.NewFirebaseAuthClient(authClient))
	}

	messageUseCase := usecase.NewMessageUseCase(store.Messages, store.Users, store.Swaps, wsManager)
	wsManager.WithRelayPolicy(messageUseCase.CanMessage)

	lifecycle := service.NewSwapLifecycle(service.NewAccessGuard())
	ratings := usecase.NewRatingAggregator(store.Reviews, store.Users, registry)

	handler.Setup(
		authUseCase,
		usecase.NewUserUseCase(store.Users, fileStorage),
		usecase.NewSkillUseCase(store.Skills),
		usecase.NewSwapUseCase(store.Swaps, store.Users, lifecycle, registry, wsManager),
		usecase.NewReviewUseCase(store.Reviews, store.Swaps, ratings),
		messageUseCase,
	)
	handler.SetupHealthHandler(health)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(apimiddleware.RequestLogger())
	e.Use(apimiddleware.Metrics(registry))
	e.Use(middleware.CORS())

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.SetupHealthRouter(e, registry.Handler())
	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(wsManager, nil), authMiddleware)

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		logger.Info("Starting server on port %s (store=%s, env=%s)", cfg.ServerPort, cfg.Store.Type, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
