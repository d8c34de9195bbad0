package repository_catalog_pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository 基于 gorm/postgres 的目录存储
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate 建表与索引
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&artistModel{}, &contentModel{}); err != nil {
		return fmt.Errorf("migrate catalog tables: %w", err)
	}
	r.logger.Info("catalog tables migrated",
		"event", "postgres_migrated",
		"module", "repository/repository_catalog_pg",
		"layer", "adapter",
	)
	return nil
}

func (r *Repository) Artists() domain_catalog.ArtistRepository {
	return artistRepository{r}
}

func (r *Repository) Contents() domain_catalog.ContentRepository {
	return contentRepository{r}
}

type artistRepository struct{ r *Repository }

func (a artistRepository) Create(ctx context.Context, artist *domain_catalog.Artist) error {
	row := artistModelFromEntity(artist)
	if err := a.r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("artist insert: %w", domain.ErrDuplicateKey)
		}
		return fmt.Errorf("artist insert failed: %w", err)
	}
	artist.Seq = row.Seq
	return nil
}

func (a artistRepository) GetByID(ctx context.Context, id string) (*domain_catalog.Artist, error) {
	var row artistModel
	err := a.r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("artist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("artist lookup failed: %w", err)
	}
	return row.toEntity(), nil
}

func (a artistRepository) GetByEmail(ctx context.Context, email string) (*domain_catalog.Artist, error) {
	var row artistModel
	err := a.r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("artist lookup by email failed: %w", err)
	}
	return row.toEntity(), nil
}

func (a artistRepository) List(ctx context.Context, filter domain_catalog.ArtistFilter) ([]*domain_catalog.Artist, error) {
	query := a.r.db.WithContext(ctx).Model(&artistModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"name ILIKE ? OR name_pinyin ILIKE ? OR bio ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	query = paginate(query, filter.Skip, filter.Limit)

	var rows []artistModel
	if err := query.Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("artist list failed: %w", err)
	}
	artists := make([]*domain_catalog.Artist, 0, len(rows))
	for _, row := range rows {
		artists = append(artists, row.toEntity())
	}
	return artists, nil
}

func (a artistRepository) Update(
	ctx context.Context,
	id string,
	patch domain_catalog.ArtistPatch,
	updatedAt time.Time,
) (*domain_catalog.Artist, error) {
	updates := map[string]interface{}{"updated_at": updatedAt.UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.NamePinyin != nil {
		updates["name_pinyin"] = *patch.NamePinyin
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Website != nil {
		updates["website"] = *patch.Website
	}

	var updated *domain_catalog.Artist
	err := a.r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row artistModel
		if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("artist", id)
			}
			return err
		}
		if patch.SocialLinks != nil {
			row.SocialLinks = patch.SocialLinks
			if err := tx.Model(&row).Select("social_links").Updates(&row).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&artistModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("artist update failed: %w", err)
	}
	return updated, nil
}

func (a artistRepository) SetProfileImage(
	ctx context.Context,
	id string,
	image domain_catalog.ProfileImage,
	updatedAt time.Time,
) error {
	result := a.r.db.WithContext(ctx).
		Model(&artistModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"profile_media_type": image.MediaType,
			"profile_image":      image.Data,
			"updated_at":         updatedAt.UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("artist profile image update failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("artist", id)
	}
	return nil
}

type contentRepository struct{ r *Repository }

// Create 在事务内插入，失败时整体回滚
func (c contentRepository) Create(ctx context.Context, content *domain_catalog.Content) error {
	row := contentModelFromEntity(content)
	err := c.r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("content insert: %w", domain.ErrDuplicateKey)
		}
		return fmt.Errorf("content insert failed: %w", err)
	}
	content.Seq = row.Seq
	return nil
}

func (c contentRepository) GetByID(ctx context.Context, id string) (*domain_catalog.Content, error) {
	var row contentModel
	err := c.r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("content", id)
	}
	if err != nil {
		return nil, fmt.Errorf("content lookup failed: %w", err)
	}
	return row.toEntity(), nil
}

func (c contentRepository) List(ctx context.Context, filter domain_catalog.ContentFilter) ([]*domain_catalog.Content, error) {
	query := c.r.db.WithContext(ctx).Model(&contentModel{})
	if filter.ArtistID != "" {
		query = query.Where("artist_id = ?", filter.ArtistID)
	}
	if filter.Category != 0 {
		query = query.Where("category = ?", int(filter.Category))
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR "+tagMatchClause,
			pattern, pattern, pattern,
		)
	}
	query = paginate(query, filter.Skip, filter.Limit)

	var rows []contentModel
	if err := query.Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("content list failed: %w", err)
	}
	contents := make([]*domain_catalog.Content, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, row.toEntity())
	}
	return contents, nil
}

func paginate(query *gorm.DB, skip, limit int64) *gorm.DB {
	if skip > 0 {
		query = query.Offset(int(skip))
	}
	if limit > 0 {
		query = query.Limit(int(limit))
	}
	return query
}

// tagMatchClause 逐个标签匹配，避免命中 JSON 的引号与逗号；非数组值按空数组处理
const tagMatchClause = `EXISTS (SELECT 1 FROM jsonb_array_elements_text(` +
	`CASE WHEN jsonb_typeof(tags) = 'array' THEN tags ELSE '[]'::jsonb END) AS t(tag) ` +
	`WHERE t.tag ILIKE ?)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
