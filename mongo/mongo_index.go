package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/creatorhub/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	keys   bson.D
	name   string
	unique bool
}

// CreateIndexes 为目录集合建立索引，已存在的同名索引跳过
func CreateIndexes(ctx context.Context, db Database, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	plan := map[string][]indexSpec{
		// Artist Collection
		domain.CollectionCatalogArtist: {
			{keys: bson.D{{Key: "email", Value: 1}}, name: "email_unique", unique: true},
			{keys: bson.D{{Key: "seq", Value: 1}}, name: "seq"},
			{keys: bson.D{{Key: "name_pinyin", Value: 1}}, name: "name_pinyin"},
		},
		// Content Collection
		domain.CollectionCatalogContent: {
			{keys: bson.D{{Key: "seq", Value: 1}}, name: "seq"},
			{keys: bson.D{{Key: "artist_id", Value: 1}, {Key: "seq", Value: 1}}, name: "artist_seq_compound"},
			{keys: bson.D{{Key: "category", Value: 1}, {Key: "seq", Value: 1}}, name: "category_seq_compound"},
			{keys: bson.D{{Key: "tags", Value: 1}}, name: "tags"},
		},
	}

	var errs []error
	for collectionName, specs := range plan {
		collection := db.Collection(collectionName)
		existing := existingIndexNames(ctx, collection, logger)
		for _, spec := range specs {
			if existing[spec.name] {
				logger.Debug("index exists, skipping",
					"event", "mongo_index_skip",
					"module", "mongo",
					"collection", collectionName,
					"index", spec.name,
				)
				continue
			}
			if err := createIndex(ctx, collection, spec); err != nil {
				errs = append(errs, fmt.Errorf("create index %s.%s: %w", collectionName, spec.name, err))
				continue
			}
			logger.Info("index created",
				"event", "mongo_index_created",
				"module", "mongo",
				"collection", collectionName,
				"index", spec.name,
			)
		}
	}
	return errors.Join(errs...)
}

func existingIndexNames(ctx context.Context, collection Collection, logger *slog.Logger) map[string]bool {
	names := make(map[string]bool)
	specs, err := collection.Indexes().ListSpecifications(ctx)
	if err != nil {
		// 集合尚未创建时列举失败，直接尝试创建
		logger.Warn("list indexes failed", "module", "mongo", "error", err)
		return names
	}
	for _, spec := range specs {
		names[spec.Name] = true
	}
	return names
}

func createIndex(ctx context.Context, collection Collection, spec indexSpec) error {
	indexOptions := options.Index().SetName(spec.name)
	if spec.unique {
		indexOptions.SetUnique(true)
	}
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    spec.keys,
		Options: indexOptions,
	})
	return err
}
