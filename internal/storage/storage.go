// Package storage opens the backend selected by STORAGE_DRIVER and exposes it
// as service stores plus the writers used by cmd/seed.
package storage

import (
	"context"
	"fmt"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/config"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/db"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository/memstore"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository/mongostore"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/service"
)

type ConfigWriter interface {
	Replace(ctx context.Context, cfg *domain.GameConfig) error
}

type MessageWriter interface {
	Upsert(ctx context.Context, m domain.AntiCheatingMessage) error
}

// Backend - открытое хранилище
type Backend struct {
	Driver   string
	Stores   service.Stores
	Config   ConfigWriter
	Messages MessageWriter
	Ping     func(ctx context.Context) error
	Close    func()
}

// Open подключается к хранилищу из конфига. migrate=false пропускает миграции postgres
// и создание индексов mongo
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, migrate)
	case config.DriverMongo:
		return openMongo(ctx, cfg, migrate)
	case config.DriverMemory:
		return Memory(memstore.New()), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func openPostgres(ctx context.Context, cfg *config.Config, migrate bool) (*Backend, error) {
	if migrate {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logger.Info("migrations applied")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	configs := repository.NewConfigRepository(pool)
	messages := repository.NewMessageRepository(pool)
	return &Backend{
		Driver: config.DriverPostgres,
		Stores: service.Stores{
			Sessions:    repository.NewSessionRepository(pool),
			Config:      configs,
			Messages:    messages,
			Events:      repository.NewEventRepository(pool),
			Submissions: repository.NewSubmissionRepository(pool),
		},
		Config:   configs,
		Messages: messages,
		Ping:     pool.Ping,
		Close:    pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, migrate bool) (*Backend, error) {
	client, database, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	configs := mongostore.NewConfigRepository(database)
	messages := mongostore.NewMessageRepository(database)
	return &Backend{
		Driver: config.DriverMongo,
		Stores: service.Stores{
			Sessions:    mongostore.NewSessionRepository(database),
			Config:      configs,
			Messages:    messages,
			Events:      mongostore.NewEventRepository(database),
			Submissions: mongostore.NewSubmissionRepository(database),
		},
		Config:   configs,
		Messages: messages,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		},
	}, nil
}

// Memory оборачивает store в памяти
func Memory(store *memstore.Store) *Backend {
	return &Backend{
		Driver: config.DriverMemory,
		Stores: service.Stores{
			Sessions:    store.Sessions,
			Config:      store.Config,
			Messages:    store.Messages,
			Events:      store.Events,
			Submissions: store.Submissions,
		},
		Config:   store.Config,
		Messages: store.Messages,
		Ping:     func(context.Context) error { return nil },
		Close:    func() {},
	}
}
