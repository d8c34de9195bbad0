package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// BaseRepository 通用Repository接口，提供目录实体的标准读写操作
// T: 实体类型，_id 为字符串UUID
type BaseRepository[T any] interface {
	// 基础写操作
	Create(ctx context.Context, entity *T) error
	UpdateByID(ctx context.Context, id string, update bson.M) (bool, error)

	// 查询操作
	GetByID(ctx context.Context, id string) (*T, error)
	GetOneByFilter(ctx context.Context, filter interface{}) (*T, error)

	// 分页排序查询
	GetPaginatedSorted(ctx context.Context, filter interface{}, skip, limit int64, sort bson.D) ([]*T, error)

	// 插入序号
	NextSequence(ctx context.Context) (int64, error)
}
