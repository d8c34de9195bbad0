package usecase_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/domain/domain_util"
	"github.com/google/uuid"
)

// ContentUsecase 内容提交流水线
type ContentUsecase struct {
	registry domain_catalog.ArtistRegistry
	repo     domain_catalog.ContentRepository
	prober   domain_catalog.MediaProber
	timeout  time.Duration
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

var _ domain_catalog.IngestionPipeline = (*ContentUsecase)(nil)

// NewContentUsecase prober 可为 nil，此时不记录媒体信息
func NewContentUsecase(
	registry domain_catalog.ArtistRegistry,
	repo domain_catalog.ContentRepository,
	prober domain_catalog.MediaProber,
	timeout time.Duration,
	logger *slog.Logger,
) *ContentUsecase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentUsecase{
		registry: registry,
		repo:     repo,
		prober:   prober,
		timeout:  timeout,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Ingest 校验顺序固定：artist -> title -> file，首个失败即返回
func (uc *ContentUsecase) Ingest(ctx context.Context, submission domain_catalog.Submission) (*domain_catalog.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	title := strings.TrimSpace(submission.Title)

	validations := []func() error{
		func() error {
			_, err := uc.registry.GetArtist(ctx, submission.ArtistID)
			return err
		},
		func() error {
			if title == "" {
				return domain.NewValidationError("title")
			}
			return nil
		},
		func() error {
			if len(submission.Data) == 0 {
				return domain.NewValidationError("file")
			}
			return nil
		},
	}
	for _, validate := range validations {
		if err := validate(); err != nil {
			return nil, err
		}
	}

	category := domain_catalog.Classify(submission.DeclaredType)
	content := &domain_catalog.Content{
		ID:          uc.newID(),
		CreatedAt:   uc.now(),
		ArtistID:    strings.TrimSpace(submission.ArtistID),
		Title:       title,
		Description: strings.TrimSpace(submission.Description),
		Tags:        domain_util.NormalizeTags(submission.RawTags),
		File: domain_catalog.FileObject{
			Name:      submission.FileName,
			MediaType: submission.DeclaredType,
			Size:      int64(len(submission.Data)),
			Data:      submission.Data,
		},
		Category:  category,
		MediaInfo: uc.probe(category, submission.Data),
	}

	if err := uc.repo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}

	uc.logger.Info("content ingested",
		"event", "content_ingested",
		"module", "usecase/usecase_catalog",
		"layer", "usecase",
		"content_id", content.ID,
		"artist_id", content.ArtistID,
		"category", category.String(),
		"size", content.File.Size,
	)
	return content, nil
}

// probe 探测失败只记录日志
func (uc *ContentUsecase) probe(category domain_catalog.RenderingCategory, data []byte) *domain_catalog.MediaInfo {
	if uc.prober == nil {
		return nil
	}
	info, err := uc.prober.Inspect(category, data)
	if err != nil {
		uc.logger.Debug("media probe failed",
			"event", "media_probe_failed",
			"module", "usecase/usecase_catalog",
			"layer", "usecase",
			"category", category.String(),
			"error", err,
		)
	}
	return info
}
