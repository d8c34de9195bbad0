package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/mongo"
	"github.com/creatorhub/catalog/repository/repository_catalog"
	"github.com/creatorhub/catalog/repository/repository_catalog_pg"
	"github.com/creatorhub/catalog/repository/repository_memory"
	"gorm.io/gorm"
)

// Stores 当前驱动下的记录存储
type Stores struct {
	Driver   string
	Artists  domain_catalog.ArtistRepository
	Contents domain_catalog.ContentRepository

	mongoClient mongo.Client
	mongoDB     mongo.Database
	postgres    *gorm.DB
	logger      *slog.Logger
}

// NewMemoryStores 进程内存储，不依赖外部服务
func NewMemoryStores(logger *slog.Logger) *Stores {
	store := repository_memory.NewStore()
	return &Stores{
		Driver:   StoreMemory,
		Artists:  store.Artists(),
		Contents: store.Contents(),
		logger:   logger,
	}
}

// OpenStores 按 STORE_DRIVER 建立连接；postgres 驱动自动迁移表结构，mongo 驱动自动建立索引
func OpenStores(ctx context.Context, env *Env, logger *slog.Logger) (*Stores, error) {
	switch env.StoreDriver {
	case StoreMemory:
		return NewMemoryStores(logger), nil

	case StorePostgres:
		db, err := NewPostgresDatabase(env, logger)
		if err != nil {
			return nil, err
		}
		repo := repository_catalog_pg.NewRepository(db, logger)
		if err := repo.Migrate(ctx); err != nil {
			_ = ClosePostgresConnection(db)
			return nil, err
		}
		return &Stores{
			Driver:   StorePostgres,
			Artists:  repo.Artists(),
			Contents: repo.Contents(),
			postgres: db,
			logger:   logger,
		}, nil

	case StoreMongo:
		client, err := NewMongoDatabase(env, logger)
		if err != nil {
			return nil, err
		}
		stores, err := newMongoStores(ctx, client, client.Database(env.DBName), logger)
		if err != nil {
			CloseMongoDBConnection(client, logger)
			return nil, err
		}
		return stores, nil
	}
	return nil, fmt.Errorf("unsupported STORE_DRIVER %q", env.StoreDriver)
}

// newMongoStores 建立目录索引后返回仓储；email 唯一约束依赖 email_unique 索引
func newMongoStores(ctx context.Context, client mongo.Client, db mongo.Database, logger *slog.Logger) (*Stores, error) {
	if err := mongo.CreateIndexes(ctx, db, logger); err != nil {
		return nil, fmt.Errorf("create mongo indexes: %w", err)
	}
	return &Stores{
		Driver:      StoreMongo,
		Artists:     repository_catalog.NewArtistRepository(db, domain.CollectionCatalogArtist),
		Contents:    repository_catalog.NewContentRepository(db, domain.CollectionCatalogContent),
		mongoClient: client,
		mongoDB:     db,
		logger:      logger,
	}, nil
}

// MongoDatabase 非 mongo 驱动时返回 nil
func (s *Stores) MongoDatabase() mongo.Database {
	return s.mongoDB
}

// Ping 检查底层存储连通性
func (s *Stores) Ping(ctx context.Context) error {
	switch {
	case s.mongoClient != nil:
		return s.mongoClient.Ping(ctx)
	case s.postgres != nil:
		sqlDB, err := s.postgres.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	return ctx.Err()
}

func (s *Stores) Close() {
	if s.mongoClient != nil {
		CloseMongoDBConnection(s.mongoClient, s.logger)
	}
	if s.postgres != nil {
		if err := ClosePostgresConnection(s.postgres); err != nil {
			s.logger.Error("postgres close failed",
				"event", "postgres_close_failed",
				"module", "bootstrap",
				"layer", "platform",
				"error", err,
			)
		}
	}
}
