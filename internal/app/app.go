// Package app assembles the storage, infrastructure clients and services
// shared by the server and seed commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"smapp/internal/auth"
	"smapp/internal/cache"
	"smapp/internal/config"
	"smapp/internal/db"
	"smapp/internal/events"
	"smapp/internal/github"
	"smapp/internal/metrics"
	"smapp/internal/repository"
	"smapp/internal/repository/mongostore"
	"smapp/internal/service"
)

// App holds the long-lived dependencies of one process.
type App struct {
	Config     *config.Config
	Store      *repository.Store
	Cache      *cache.Client
	JWT        *auth.JWTService
	TokenStore *auth.TokenStore
	Publisher  events.Publisher
	Registry   *prometheus.Registry

	Users    service.UserService
	Auth     service.AuthService
	Profiles service.ProfileService
	Posts    service.PostService

	closers []func() error
}

// New connects every backend named by cfg and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Registry: metrics.NewRegistry()}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, closeStore)

	a.Cache = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if a.Cache != nil {
		if err := a.Cache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
		}
		a.closers = append(a.closers, a.Cache.Close)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, cfg.EventSubjectPrefix)
		if err != nil {
			slog.Warn("nats unreachable, events disabled", "url", cfg.NATSURL, "error", err)
		} else {
			publisher = nc
			a.closers = append(a.closers, nc.Close)
		}
	}
	a.Publisher = events.NewInstrumented(publisher, a.Registry)

	a.JWT = auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	a.TokenStore = auth.NewTokenStore(a.Cache)

	a.Users = service.NewUserService(a.Store.Users, a.Cache)
	a.Auth = service.NewAuthService(a.Store.Users, a.Users, a.JWT, a.TokenStore, a.Publisher)
	a.Profiles = service.NewProfileService(a.Store, a.Users, github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken), a.Publisher)
	a.Posts = service.NewPostService(a.Store.Posts, a.Users, a.Publisher)
	return a, nil
}

// Close releases every connection in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, func() error, error) {
	if cfg.DBDriver == config.DriverMongo {
		client, err := db.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if cfg.ResetDB {
			slog.Warn("reset_db set, dropping collections", "database", cfg.MongoDatabase)
			if err := db.ResetMongo(ctx, database); err != nil {
				_ = client.Disconnect(ctx)
				return nil, nil, err
			}
		}
		if err := db.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return mongostore.NewStore(database), func() error {
			return client.Disconnect(context.Background())
		}, nil
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("sql handle: %w", err)
	}
	if cfg.ResetDB {
		slog.Warn("reset_db set, dropping tables", "driver", cfg.DBDriver)
		if err := db.Reset(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return repository.NewGormStore(gormDB), sqlDB.Close, nil
}
