package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/infrastructure/boltdb"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/todo/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/todo/internal/infrastructure/redis"
	sqliteInfra "github.com/fastygo/todo/internal/infrastructure/sqlite"
	"github.com/fastygo/todo/internal/lifecycle"
	"github.com/fastygo/todo/repository"
	boltRepo "github.com/fastygo/todo/repository/bolt"
	"github.com/fastygo/todo/repository/postgres"
	redisRepo "github.com/fastygo/todo/repository/redis"
	"github.com/fastygo/todo/repository/sqlite"
)

const sessionBucket = "sessions"

type dataStore struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

// openDataStore connects the configured database and prepares its schema.
func openDataStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, mon *monitor.Monitor, logger *zap.Logger) (dataStore, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return dataStore{}, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return dataStore{}, err
		}
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		mon.Register("database", pool.Ping)
		return dataStore{
			users: postgres.NewUserRepository(pool),
			tasks: postgres.NewTaskRepository(pool),
		}, nil

	default:
		db, err := sqliteInfra.Open(ctx, cfg.Database, logger)
		if err != nil {
			return dataStore{}, err
		}
		manager.Register("sqlite", func(context.Context) error {
			return sqliteInfra.Close(db)
		})
		if err := sqlite.Migrate(ctx, db); err != nil {
			return dataStore{}, fmt.Errorf("migrate: %w", err)
		}
		mon.Register("database", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		return dataStore{
			users: sqlite.NewUserRepository(db),
			tasks: sqlite.NewTaskRepository(db),
		}, nil
	}
}

// openSessionStore connects the configured session backend.
func openSessionStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, mon *monitor.Monitor, logger *zap.Logger) (repository.SessionRepository, error) {
	var store repository.SessionRepository

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		manager.RegisterCloser("redis", client)
		store = redisRepo.NewSessionRepository(client, cfg.Session.AnonymousTTL)

	default:
		kv, err := boltdb.Open(cfg.Session.BoltPath, sessionBucket)
		if err != nil {
			return nil, err
		}
		manager.RegisterCloser("bolt", kv)
		repo := boltRepo.NewSessionRepository(kv, cfg.Session.AnonymousTTL)
		purged, err := repo.PurgeExpired(ctx)
		if err != nil {
			logger.Warn("expired session purge failed", zap.Error(err))
		} else if purged > 0 {
			logger.Info("purged expired sessions", zap.Int("count", purged))
		}
		store = repo
	}

	mon.Register("sessions", store.Ping)
	return store, nil
}
