package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/creatorhub/catalog/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

func NewMongoDatabase(env *Env, logger *slog.Logger) (mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.NewClient(env.MongoConnectionURI())
	if err != nil {
		return nil, fmt.Errorf("create mongo client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("mongo connected",
		"event", "mongo_connected",
		"module", "bootstrap",
		"layer", "platform",
		"database", env.DBName,
	)
	return client, nil
}

func CloseMongoDBConnection(client mongo.Client, logger *slog.Logger) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.Background()); err != nil {
		logger.Error("mongo disconnect failed",
			"event", "mongo_disconnect_failed",
			"module", "bootstrap",
			"layer", "platform",
			"error", err,
		)
		return
	}
	logger.Info("mongo connection closed",
		"event", "mongo_disconnected",
		"module", "bootstrap",
		"layer", "platform",
	)
}

func NewPostgresDatabase(env *Env, logger *slog.Logger) (*gorm.DB, error) {
	dsn := env.PostgresConnectionDSN()
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	level := gormlogger.Warn
	if env.IsProduction() {
		level = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres connected",
		"event", "postgres_connected",
		"module", "bootstrap",
		"layer", "platform",
	)
	return db, nil
}

func ClosePostgresConnection(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
