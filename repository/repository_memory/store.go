package repository_memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/domain/domain_util"
)

// Store 进程内记录存储，用于本地运行与测试
// 所有读写都在锁内完成，读返回副本，调用方无法改写已提交记录
type Store struct {
	mu sync.RWMutex

	artists       []*domain_catalog.Artist
	artistByID    map[string]int
	artistByEmail map[string]int
	contents      []*domain_catalog.Content
	contentByID   map[string]int
}

func NewStore() *Store {
	return &Store{
		artistByID:    make(map[string]int),
		artistByEmail: make(map[string]int),
		contentByID:   make(map[string]int),
	}
}

func (s *Store) Artists() domain_catalog.ArtistRepository {
	return artistStore{s}
}

func (s *Store) Contents() domain_catalog.ContentRepository {
	return contentStore{s}
}

type artistStore struct{ s *Store }

func (a artistStore) Create(ctx context.Context, artist *domain_catalog.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artistByID[artist.ID]; exists {
		return fmt.Errorf("artist %s: %w", artist.ID, domain.ErrDuplicateKey)
	}
	if _, exists := s.artistByEmail[artist.Email]; exists {
		return fmt.Errorf("artist email: %w", domain.ErrDuplicateKey)
	}

	artist.Seq = int64(len(s.artists) + 1)
	stored := cloneArtist(artist)
	s.artistByID[stored.ID] = len(s.artists)
	s.artistByEmail[stored.Email] = len(s.artists)
	s.artists = append(s.artists, stored)
	return nil
}

func (a artistStore) GetByID(ctx context.Context, id string) (*domain_catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.artistByID[id]
	if !exists {
		return nil, domain.NewNotFoundError("artist", id)
	}
	return cloneArtist(s.artists[idx]), nil
}

func (a artistStore) GetByEmail(ctx context.Context, email string) (*domain_catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.artistByEmail[email]
	if !exists {
		return nil, nil
	}
	return cloneArtist(s.artists[idx]), nil
}

func (a artistStore) List(ctx context.Context, filter domain_catalog.ArtistFilter) ([]*domain_catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain_catalog.Artist, 0, len(s.artists))
	for _, artist := range s.artists {
		if filter.Search != "" &&
			!domain_util.FoldContainsAny(filter.Search, artist.Name, artist.NamePinyin, artist.Bio, artist.Location) {
			continue
		}
		matched = append(matched, artist)
	}

	page := paginate(matched, filter.Skip, filter.Limit)
	result := make([]*domain_catalog.Artist, 0, len(page))
	for _, artist := range page {
		result = append(result, cloneArtist(artist))
	}
	return result, nil
}

func (a artistStore) Update(
	ctx context.Context,
	id string,
	patch domain_catalog.ArtistPatch,
	updatedAt time.Time,
) (*domain_catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.artistByID[id]
	if !exists {
		return nil, domain.NewNotFoundError("artist", id)
	}

	// 在副本上修改后整体替换
	updated := cloneArtist(s.artists[idx])
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.NamePinyin != nil {
		updated.NamePinyin = *patch.NamePinyin
	}
	if patch.Bio != nil {
		updated.Bio = *patch.Bio
	}
	if patch.Location != nil {
		updated.Location = *patch.Location
	}
	if patch.Website != nil {
		updated.Website = *patch.Website
	}
	if patch.SocialLinks != nil {
		updated.SocialLinks = maps.Clone(patch.SocialLinks)
	}
	updated.UpdatedAt = updatedAt
	s.artists[idx] = updated
	return cloneArtist(updated), nil
}

func (a artistStore) SetProfileImage(
	ctx context.Context,
	id string,
	image domain_catalog.ProfileImage,
	updatedAt time.Time,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.artistByID[id]
	if !exists {
		return domain.NewNotFoundError("artist", id)
	}
	updated := cloneArtist(s.artists[idx])
	updated.ProfileImage = &domain_catalog.ProfileImage{
		MediaType: image.MediaType,
		Data:      slices.Clone(image.Data),
	}
	updated.UpdatedAt = updatedAt
	s.artists[idx] = updated
	return nil
}

type contentStore struct{ s *Store }

func (c contentStore) Create(ctx context.Context, content *domain_catalog.Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contentByID[content.ID]; exists {
		return fmt.Errorf("content %s: %w", content.ID, domain.ErrDuplicateKey)
	}
	content.Seq = int64(len(s.contents) + 1)
	s.contentByID[content.ID] = len(s.contents)
	s.contents = append(s.contents, cloneContent(content))
	return nil
}

func (c contentStore) GetByID(ctx context.Context, id string) (*domain_catalog.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := c.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.contentByID[id]
	if !exists {
		return nil, domain.NewNotFoundError("content", id)
	}
	return cloneContent(s.contents[idx]), nil
}

func (c contentStore) List(ctx context.Context, filter domain_catalog.ContentFilter) ([]*domain_catalog.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := c.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain_catalog.Content, 0, len(s.contents))
	for _, content := range s.contents {
		if filter.ArtistID != "" && content.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Category != 0 && content.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !matchesContent(content, filter.Search) {
			continue
		}
		matched = append(matched, content)
	}

	page := paginate(matched, filter.Skip, filter.Limit)
	result := make([]*domain_catalog.Content, 0, len(page))
	for _, content := range page {
		result = append(result, cloneContent(content))
	}
	return result, nil
}

func matchesContent(content *domain_catalog.Content, search string) bool {
	if domain_util.FoldContainsAny(search, content.Title, content.Description) {
		return true
	}
	return domain_util.FoldContainsAny(search, content.Tags...)
}

func paginate[T any](items []T, skip, limit int64) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}

func cloneArtist(artist *domain_catalog.Artist) *domain_catalog.Artist {
	copied := *artist
	copied.SocialLinks = maps.Clone(artist.SocialLinks)
	if artist.ProfileImage != nil {
		copied.ProfileImage = &domain_catalog.ProfileImage{
			MediaType: artist.ProfileImage.MediaType,
			Data:      slices.Clone(artist.ProfileImage.Data),
		}
	}
	return &copied
}

func cloneContent(content *domain_catalog.Content) *domain_catalog.Content {
	copied := *content
	copied.Tags = slices.Clone(content.Tags)
	copied.File.Data = slices.Clone(content.File.Data)
	if content.MediaInfo != nil {
		info := *content.MediaInfo
		copied.MediaInfo = &info
	}
	return &copied
}
