package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/booksfrog/booksfrog/internal/api/http"
	"github.com/booksfrog/booksfrog/internal/api/http/handlers"
	"github.com/booksfrog/booksfrog/internal/auth"
	"github.com/booksfrog/booksfrog/internal/config"
	"github.com/booksfrog/booksfrog/internal/events"
	"github.com/booksfrog/booksfrog/internal/observability"
	"github.com/booksfrog/booksfrog/internal/persistence"
	"github.com/booksfrog/booksfrog/internal/repository"
	"github.com/booksfrog/booksfrog/internal/service"
	"github.com/booksfrog/booksfrog/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	ledgerService := service.NewLedgerService(cfg.Ledger, accountRepo, userRepo, dispatcher)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Ledger:     ledgerService,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	categoryService := service.NewCategoryService(categoryRepo)
	bookService := service.NewBookService(bookRepo, categoryRepo, ledgerService, redis, logger, cfg.Ledger.PremiumReadCost)
	favoriteService := service.NewFavoriteService(favoriteRepo, userRepo, bookRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 32 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tokens:         handlers.NewTokensHandler(ledgerService),
		Books:          handlers.NewBooksHandler(bookService),
		Categories:     handlers.NewCategoriesHandler(categoryService, bookService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
