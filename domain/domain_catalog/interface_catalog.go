package domain_catalog

import (
	"context"
	"time"
)

// ArtistRepository 艺术家存储层接口
// GetByID 在记录不存在时返回 *domain.NotFoundError
type ArtistRepository interface {
	Create(ctx context.Context, artist *Artist) error
	GetByID(ctx context.Context, id string) (*Artist, error)
	GetByEmail(ctx context.Context, email string) (*Artist, error) // 不存在时返回 nil, nil
	List(ctx context.Context, filter ArtistFilter) ([]*Artist, error)
	Update(ctx context.Context, id string, patch ArtistPatch, updatedAt time.Time) (*Artist, error)
	SetProfileImage(ctx context.Context, id string, image ProfileImage, updatedAt time.Time) error
}

// ContentRepository 内容存储层接口，内容创建后不可变
type ContentRepository interface {
	Create(ctx context.Context, content *Content) error
	GetByID(ctx context.Context, id string) (*Content, error)
	List(ctx context.Context, filter ContentFilter) ([]*Content, error)
}

// ArtistRegistry 艺术家注册表
type ArtistRegistry interface {
	CreateArtist(ctx context.Context, input ArtistInput) (*Artist, error)
	GetArtist(ctx context.Context, id string) (*Artist, error)
	ListArtists(ctx context.Context, filter ArtistFilter) ([]*Artist, error)
	UpdateArtist(ctx context.Context, id string, patch ArtistPatch) (*Artist, error)
	SetProfileImage(ctx context.Context, id, mediaType string, data []byte) error
}

// IngestionPipeline 内容提交流水线
type IngestionPipeline interface {
	Ingest(ctx context.Context, submission Submission) (*Content, error)
}

// CatalogQuery 目录只读查询
type CatalogQuery interface {
	ListContent(ctx context.Context, filter ContentFilter) ([]*Content, error)
	GetContent(ctx context.Context, id string) (*Content, error)
	ListArtists(ctx context.Context, filter ArtistFilter) ([]*Artist, error)
	ListArtistContent(ctx context.Context, artistID string, skip, limit int64) ([]*Content, error)
	ResolveOwner(ctx context.Context, content *Content) (*Artist, error)
}

// MediaProber 从文件字节中提取附加媒体信息
type MediaProber interface {
	Inspect(category RenderingCategory, data []byte) (*MediaInfo, error)
}
