package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lumiere-studio/salon-booking/internal/config"
	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/infra/repository"
)

// NewPostgres opens the SQL pool. Driver errors are translated so that
// unique violations surface as gorm.ErrDuplicatedKey.
func NewPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func NewMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewRedis returns nil when no address is configured.
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Store is the selected slot repository plus whatever must be released on
// shutdown.
type Store struct {
	Repo  domain.Repository
	close func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStore builds the repository selected by STORE_BACKEND and prepares its
// schema or indexes.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		repo, err := repository.NewSlotFileRepository(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		log.Info("slot store ready", zap.String("backend", cfg.StoreBackend), zap.String("path", cfg.DataFile))
		return &Store{Repo: repo}, nil

	case config.BackendMongo:
		client, err := NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo := repository.NewSlotMongoRepository(client.Database(cfg.MongoDB))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info("slot store ready", zap.String("backend", cfg.StoreBackend), zap.String("database", cfg.MongoDB))
		return &Store{Repo: repo, close: client.Disconnect}, nil

	case config.BackendPostgres:
		gdb, err := NewPostgres(cfg)
		if err != nil {
			return nil, err
		}
		repo := repository.NewSlotGormRepository(gdb)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		sqlDB, _ := gdb.DB()
		log.Info("slot store ready", zap.String("backend", cfg.StoreBackend))
		return &Store{Repo: repo, close: func(context.Context) error { return sqlDB.Close() }}, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
