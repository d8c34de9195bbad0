package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseMongoRepository MongoDB通用Repository实现
type BaseMongoRepository[T any] struct {
	db         mongo.Database
	collection string
}

// NewBaseMongoRepository 创建新的MongoDB Repository实例
func NewBaseMongoRepository[T any](db mongo.Database, collection string) *BaseMongoRepository[T] {
	return &BaseMongoRepository[T]{
		db:         db,
		collection: collection,
	}
}

var _ domain.BaseRepository[struct{}] = (*BaseMongoRepository[struct{}])(nil)

// Create 插入新实体，唯一键冲突返回 domain.ErrDuplicateKey
func (r *BaseMongoRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, entity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", r.collection, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

// GetByID 根据ID获取实体，不存在时返回 nil, nil
func (r *BaseMongoRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	return r.GetOneByFilter(ctx, bson.M{"_id": id})
}

// UpdateByID 根据ID更新指定字段，返回是否命中；空ID视为未命中
func (r *BaseMongoRepository[T]) UpdateByID(ctx context.Context, id string, update bson.M) (bool, error) {
	if id == "" {
		return false, nil
	}

	// 添加更新时间
	if setUpdate, ok := update["$set"].(bson.M); ok {
		if _, exists := setUpdate["updated_at"]; !exists {
			setUpdate["updated_at"] = time.Now().UTC()
		}
	}

	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(false))
	if err != nil {
		return false, fmt.Errorf("failed to update entity: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// GetOneByFilter 根据过滤条件获取单个实体
func (r *BaseMongoRepository[T]) GetOneByFilter(ctx context.Context, filter interface{}) (*T, error) {
	coll := r.db.Collection(r.collection)
	var entity T
	err := coll.FindOne(ctx, filter).Decode(&entity)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			return nil, nil // 没找到返回nil，不是错误
		}
		return nil, fmt.Errorf("failed to find entity: %w", err)
	}
	return &entity, nil
}

// find 根据过滤条件获取实体
func (r *BaseMongoRepository[T]) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find entities: %w", err)
	}
	defer cursor.Close(ctx)

	entities := make([]*T, 0)
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, fmt.Errorf("failed to decode entity: %w", err)
		}
		entities = append(entities, &entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %w", err)
	}
	return entities, nil
}

// GetPaginatedSorted 排序分页查询，limit 为 0 时不限制条数
func (r *BaseMongoRepository[T]) GetPaginatedSorted(ctx context.Context, filter interface{}, skip, limit int64, sort bson.D) ([]*T, error) {
	opts := options.Find().SetSort(sort)
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, filter, opts)
}

// NextSequence 原子递增计数器，返回本集合的下一个插入序号
func (r *BaseMongoRepository[T]) NextSequence(ctx context.Context) (int64, error) {
	coll := r.db.Collection(domain.CollectionCatalogCounters)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": r.collection},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence for %s: %w", r.collection, err)
	}
	return counter.Value, nil
}
