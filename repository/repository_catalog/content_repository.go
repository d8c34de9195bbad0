package repository_catalog

import (
	"context"
	"fmt"
	"regexp"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/mongo"
	"github.com/creatorhub/catalog/repository"
	"go.mongodb.org/mongo-driver/bson"
)

type contentRepository struct {
	base *repository.BaseMongoRepository[domain_catalog.Content]
}

func NewContentRepository(db mongo.Database, collection string) domain_catalog.ContentRepository {
	return &contentRepository{
		base: repository.NewBaseMongoRepository[domain_catalog.Content](db, collection),
	}
}

// Create 单文档插入，MongoDB 保证文档级原子性
func (r *contentRepository) Create(ctx context.Context, content *domain_catalog.Content) error {
	seq, err := r.base.NextSequence(ctx)
	if err != nil {
		return err
	}
	content.Seq = seq
	if err := r.base.Create(ctx, content); err != nil {
		return fmt.Errorf("content insert failed: %w", err)
	}
	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*domain_catalog.Content, error) {
	content, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("content lookup failed: %w", err)
	}
	if content == nil {
		return nil, domain.NewNotFoundError("content", id)
	}
	return content, nil
}

func (r *contentRepository) List(ctx context.Context, filter domain_catalog.ContentFilter) ([]*domain_catalog.Content, error) {
	query := bson.M{}
	if filter.ArtistID != "" {
		query["artist_id"] = filter.ArtistID
	}
	if filter.Category != 0 {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
			{"tags": pattern},
		}
	}

	contents, err := r.base.GetPaginatedSorted(ctx, query, filter.Skip, filter.Limit, bson.D{{Key: "seq", Value: 1}})
	if err != nil {
		return nil, fmt.Errorf("content list failed: %w", err)
	}
	return contents, nil
}
