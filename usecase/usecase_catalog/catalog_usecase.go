package usecase_catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
)

// CatalogUsecase 只读查询层
type CatalogUsecase struct {
	registry domain_catalog.ArtistRegistry
	repo     domain_catalog.ContentRepository
	timeout  time.Duration
}

var _ domain_catalog.CatalogQuery = (*CatalogUsecase)(nil)

func NewCatalogUsecase(
	registry domain_catalog.ArtistRegistry,
	repo domain_catalog.ContentRepository,
	timeout time.Duration,
) *CatalogUsecase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CatalogUsecase{
		registry: registry,
		repo:     repo,
		timeout:  timeout,
	}
}

func (uc *CatalogUsecase) ListContent(ctx context.Context, filter domain_catalog.ContentFilter) ([]*domain_catalog.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	filter.ArtistID = strings.TrimSpace(filter.ArtistID)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Skip, filter.Limit = clampPage(filter.Skip, filter.Limit)

	contents, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return contents, nil
}

func (uc *CatalogUsecase) GetContent(ctx context.Context, id string) (*domain_catalog.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewNotFoundError("content", id)
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *CatalogUsecase) ListArtists(ctx context.Context, filter domain_catalog.ArtistFilter) ([]*domain_catalog.Artist, error) {
	return uc.registry.ListArtists(ctx, filter)
}

func (uc *CatalogUsecase) ListArtistContent(
	ctx context.Context,
	artistID string,
	skip, limit int64,
) ([]*domain_catalog.Content, error) {
	if _, err := uc.registry.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return uc.ListContent(ctx, domain_catalog.ContentFilter{
		ArtistID: artistID,
		Skip:     skip,
		Limit:    limit,
	})
}

// ResolveOwner 艺术家不存在时返回 nil, nil
func (uc *CatalogUsecase) ResolveOwner(ctx context.Context, content *domain_catalog.Content) (*domain_catalog.Artist, error) {
	if content == nil {
		return nil, nil
	}
	artist, err := uc.registry.GetArtist(ctx, content.ArtistID)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve owner of %s: %w", content.ID, err)
	}
	return artist, nil
}
