package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/recommendation-service/internal/api/http"
	"github.com/spec-kit/recommendation-service/internal/api/http/handlers"
	"github.com/spec-kit/recommendation-service/internal/auth"
	"github.com/spec-kit/recommendation-service/internal/events"
	"github.com/spec-kit/recommendation-service/internal/observability"
	"github.com/spec-kit/recommendation-service/internal/persistence"
	"github.com/spec-kit/recommendation-service/internal/repository"
	"github.com/spec-kit/recommendation-service/internal/service"
	"github.com/spec-kit/recommendation-service/internal/worker"
)

func runServe(_ context.Context, cmd *cli.Command) error {
	cfg, logger, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Environment:      cfg.App.Env,
			Release:          cfg.App.Version,
		}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	pg, err := connectPostgres(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	typeRepo := repository.NewRequestTypeRepository(pool)
	requestRepo := repository.NewRecommendationRequestRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))
	worker.StartMetricsWorker(dispatcher, metrics)

	resolver := service.NewRequestTypeResolver(typeRepo, redis, logger)
	recommendations := service.NewRecommendationService(service.RecommendationDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		Resolver:    resolver,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTLMinutes)
	validate := validator.New()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:    logger,
		Metrics:   metrics,
		Timeout:   cfg.App.RequestTimeout(),
		RateLimit: cfg.RateLimit,
		Sentry:    sentryEnabled,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:                 handlers.NewHealthHandler(cfg.App, pg, redis),
		Users:                  handlers.NewUsersHandler(service.NewUserService(userRepo)),
		RequestTypes:           handlers.NewRequestTypesHandler(service.NewRequestTypeService(typeRepo), validate),
		RecommendationRequests: handlers.NewRecommendationRequestsHandler(recommendations, validate),
		ProfessorRequests:      handlers.NewProfessorRequestsHandler(recommendations),
		AuthMiddleware:         auth.NewAuthMiddleware(tokens, userRepo),
		Metrics:                metrics,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(cfg.App.ShutdownTimeout())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
