package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/media-discovery/internal/api/http"
	"github.com/spec-kit/media-discovery/internal/api/http/handlers"
	"github.com/spec-kit/media-discovery/internal/auth"
	"github.com/spec-kit/media-discovery/internal/catalog"
	"github.com/spec-kit/media-discovery/internal/config"
	"github.com/spec-kit/media-discovery/internal/events"
	"github.com/spec-kit/media-discovery/internal/observability"
	"github.com/spec-kit/media-discovery/internal/persistence"
	"github.com/spec-kit/media-discovery/internal/repository"
	"github.com/spec-kit/media-discovery/internal/service"
	"github.com/spec-kit/media-discovery/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := persistence.OpenDatabase(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to open accounts database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, db.Pool(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	cacheStore := persistence.OpenCacheStore(ctx, cfg.Redis, logger)
	defer cacheStore.Close() //nolint:errcheck

	pool := db.Pool()
	userRepo := repository.NewUserRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	dispatcher := events.NewSyncDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))

	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL())
	gate := auth.NewGate(tokens, auth.NewIdentityResolver(userRepo), logger)

	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:  cfg.Catalog.BaseURL,
		APIKey:   cfg.Catalog.APIKey,
		Timeout:  cfg.Catalog.Timeout(),
		Cache:    catalog.NewRedisCache(cacheStore.Cmdable()),
		CacheTTL: cfg.Catalog.CacheTTL(),
		Logger:   logger,
	})

	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	reviewService := service.NewReviewService(reviewRepo, dispatcher)
	favoriteService := service.NewFavoriteService(favoriteRepo, dispatcher)
	mediaService := service.NewMediaService(catalogClient, reviewService, favoriteService)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Prefix: cfg.App.APIPrefix,
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, map[string]handlers.Pinger{
			"postgres": db,
			"redis":    cacheStore,
		}),
		Users:     handlers.NewUsersHandler(userService),
		Reviews:   handlers.NewReviewsHandler(reviewService),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		Media:     handlers.NewMediaHandler(mediaService),
		Gate:      gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
