package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/domain/domain_util"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

type ArtistUsecase struct {
	repo    domain_catalog.ArtistRepository
	timeout time.Duration
	logger  *slog.Logger

	now   func() time.Time
	newID func() string
}

var _ domain_catalog.ArtistRegistry = (*ArtistUsecase)(nil)

func NewArtistUsecase(repo domain_catalog.ArtistRepository, timeout time.Duration, logger *slog.Logger) *ArtistUsecase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtistUsecase{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// CreateArtist 校验顺序：name 先于 email
func (uc *ArtistUsecase) CreateArtist(ctx context.Context, input domain_catalog.ArtistInput) (*domain_catalog.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	validations := []func() error{
		func() error {
			if name == "" {
				return domain.NewValidationError("name")
			}
			return nil
		},
		func() error {
			if email == "" {
				return domain.NewValidationError("email")
			}
			return nil
		},
	}
	for _, validate := range validations {
		if err := validate(); err != nil {
			return nil, err
		}
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check artist email: %w", err)
	}
	if existing != nil {
		return nil, emailTaken()
	}

	now := uc.now()
	artist := &domain_catalog.Artist{
		ID:          uc.newID(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        name,
		NamePinyin:  domain_util.PinyinKey(name),
		Email:       email,
		Bio:         strings.TrimSpace(input.Bio),
		Location:    strings.TrimSpace(input.Location),
		Website:     strings.TrimSpace(input.Website),
		SocialLinks: cleanLinks(input.SocialLinks),
	}

	if err := uc.repo.Create(ctx, artist); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("create artist: %w", err)
	}

	uc.logger.Info("artist created",
		"event", "artist_created",
		"module", "usecase/usecase_catalog",
		"layer", "usecase",
		"artist_id", artist.ID,
	)
	return artist, nil
}

func (uc *ArtistUsecase) GetArtist(ctx context.Context, id string) (*domain_catalog.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewNotFoundError("artist", id)
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *ArtistUsecase) ListArtists(ctx context.Context, filter domain_catalog.ArtistFilter) ([]*domain_catalog.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	filter.Search = strings.TrimSpace(filter.Search)
	filter.Skip, filter.Limit = clampPage(filter.Skip, filter.Limit)

	artists, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// UpdateArtist 修改可编辑资料，ID 与 Email 保持不变
func (uc *ArtistUsecase) UpdateArtist(
	ctx context.Context,
	id string,
	patch domain_catalog.ArtistPatch,
) (*domain_catalog.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.NewValidationError("name")
		}
		key := domain_util.PinyinKey(name)
		patch.Name = &name
		patch.NamePinyin = &key
	} else {
		patch.NamePinyin = nil
	}
	patch.Bio = trimmed(patch.Bio)
	patch.Location = trimmed(patch.Location)
	patch.Website = trimmed(patch.Website)
	if patch.SocialLinks != nil {
		patch.SocialLinks = cleanLinks(patch.SocialLinks)
		if patch.SocialLinks == nil {
			patch.SocialLinks = map[string]string{}
		}
	}

	if patch.Empty() {
		return uc.repo.GetByID(ctx, id)
	}

	updated, err := uc.repo.Update(ctx, id, patch, uc.now())
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update artist: %w", err)
	}

	uc.logger.Info("artist updated",
		"event", "artist_updated",
		"module", "usecase/usecase_catalog",
		"layer", "usecase",
		"artist_id", id,
	)
	return updated, nil
}

func (uc *ArtistUsecase) SetProfileImage(ctx context.Context, id, mediaType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 先确认艺术家存在，与内容提交的校验顺序一致
	validations := []func() error{
		func() error {
			_, err := uc.repo.GetByID(ctx, id)
			if err != nil && !domain.IsNotFound(err) {
				return fmt.Errorf("lookup artist: %w", err)
			}
			return err
		},
		func() error {
			if len(data) == 0 {
				return domain.NewValidationError("file")
			}
			return nil
		},
	}
	for _, validate := range validations {
		if err := validate(); err != nil {
			return err
		}
	}

	image := domain_catalog.ProfileImage{
		MediaType: strings.TrimSpace(mediaType),
		Data:      data,
	}
	if err := uc.repo.SetProfileImage(ctx, id, image, uc.now()); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("set profile image: %w", err)
	}
	return nil
}

func emailTaken() error {
	return &domain.ValidationError{Field: "email", Reason: "already registered"}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// cleanLinks 去掉空键与空值
func cleanLinks(links map[string]string) map[string]string {
	if len(links) == 0 {
		return nil
	}
	out := maps.Clone(links)
	maps.DeleteFunc(out, func(k, v string) bool {
		return strings.TrimSpace(k) == "" || strings.TrimSpace(v) == ""
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
