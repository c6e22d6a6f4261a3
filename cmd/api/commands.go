package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/recommendation-service/internal/auth"
	"github.com/spec-kit/recommendation-service/internal/catalog"
	"github.com/spec-kit/recommendation-service/internal/config"
	"github.com/spec-kit/recommendation-service/internal/observability"
	"github.com/spec-kit/recommendation-service/internal/persistence"
	"github.com/spec-kit/recommendation-service/internal/repository"
	"github.com/spec-kit/recommendation-service/internal/service"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API (default)",
		Action: runServe,
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pg, err := connectPostgres(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			return persistence.RunMigrations(ctx, pg.PoolHandle(), logger)
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load request types and users from a YAML catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "catalog file (default CATALOG_SEED_FILE)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			path := cmd.String("file")
			if path == "" {
				path = cfg.Catalog.SeedFile
			}
			cat, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}

			pg, err := connectPostgres(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			pool := pg.PoolHandle()
			res, err := cat.Apply(ctx, repository.NewRequestTypeRepository(pool), repository.NewUserRepository(pool), logger)
			if err != nil {
				return err
			}
			logger.Info("catalog applied",
				zap.String("file", path),
				zap.Int("request_types", res.RequestTypes),
				zap.Int("users", res.Users))
			return nil
		},
	}
}

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a bearer token for an existing user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "email of the user to sign for",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pg, err := connectPostgres(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTLMinutes)
			authService := service.NewAuthService(repository.NewUserRepository(pg.PoolHandle()), tokens)

			user, token, exp, err := authService.IssueToken(ctx, cmd.String("email"))
			if err != nil {
				return err
			}
			logger.Info("token issued", zap.Int64("user_id", user.ID), zap.Time("expires_at", exp))
			fmt.Fprintf(os.Stdout, "%s\nexpires %s\n", token, exp.Format(time.RFC3339))
			return nil
		},
	}
}

// bootstrap loads configuration and builds the logger shared by every command.
func bootstrap(cmd *cli.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Logger.Level = lvl
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	logger = logger.With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))
	return cfg, logger, nil
}

func connectPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*persistence.Postgres, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	if pg.PoolHandle() == nil {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return pg, nil
}
