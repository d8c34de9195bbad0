package usecase_catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/repository/repository_memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *repository_memory.Store
	artists  *ArtistUsecase
	contents *ContentUsecase
	catalog  *CatalogUsecase
}

func newFixture(t *testing.T, prober domain_catalog.MediaProber) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository_memory.NewStore()
	artists := NewArtistUsecase(store.Artists(), time.Second, logger)
	return &fixture{
		store:    store,
		artists:  artists,
		contents: NewContentUsecase(artists, store.Contents(), prober, time.Second, logger),
		catalog:  NewCatalogUsecase(artists, store.Contents(), time.Second),
	}
}

func (f *fixture) mustArtist(t *testing.T, name, email string) *domain_catalog.Artist {
	t.Helper()
	artist, err := f.artists.CreateArtist(context.Background(), domain_catalog.ArtistInput{Name: name, Email: email})
	require.NoError(t, err)
	return artist
}

func requireValidation(t *testing.T, err error, field string) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
	return verr
}

func requireNotFound(t *testing.T, err error, entity string) {
	t.Helper()
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, entity, nf.Entity)
}

type stubProber struct {
	info *domain_catalog.MediaInfo
	err  error
}

func (p stubProber) Inspect(domain_catalog.RenderingCategory, []byte) (*domain_catalog.MediaInfo, error) {
	return p.info, p.err
}

type failingContentRepo struct {
	domain_catalog.ContentRepository
}

func (failingContentRepo) Create(context.Context, *domain_catalog.Content) error {
	return errors.New("connection reset")
}

func TestCreateArtist_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		input domain_catalog.ArtistInput
		field string
	}{
		{"blank name", domain_catalog.ArtistInput{Name: "", Email: "x@y.com"}, "name"},
		{"whitespace name", domain_catalog.ArtistInput{Name: "   ", Email: "x@y.com"}, "name"},
		{"blank email", domain_catalog.ArtistInput{Name: "Ana", Email: ""}, "email"},
		{"both blank reports name", domain_catalog.ArtistInput{Name: " ", Email: " "}, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.artists.CreateArtist(ctx, tc.input)
			requireValidation(t, err, tc.field)
		})
	}

	artists, err := f.artists.ListArtists(ctx, domain_catalog.ArtistFilter{})
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestCreateArtist_TrimsAndAssignsID(t *testing.T) {
	f := newFixture(t, nil)

	artist, err := f.artists.CreateArtist(context.Background(), domain_catalog.ArtistInput{
		Name:        "  周杰伦 ",
		Email:       " jay@example.com ",
		Bio:         " singer ",
		SocialLinks: map[string]string{"weibo": "https://weibo.com/jay", "": "x", "empty": " "},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, artist.ID)
	assert.Equal(t, "周杰伦", artist.Name)
	assert.Equal(t, "zhoujielun", artist.NamePinyin)
	assert.Equal(t, "jay@example.com", artist.Email)
	assert.Equal(t, "singer", artist.Bio)
	assert.Equal(t, map[string]string{"weibo": "https://weibo.com/jay"}, artist.SocialLinks)

	stored, err := f.artists.GetArtist(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.Name, stored.Name)
}

func TestCreateArtist_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	f.mustArtist(t, "Mira", "m@x.com")

	_, err := f.artists.CreateArtist(context.Background(), domain_catalog.ArtistInput{Name: "Other", Email: " m@x.com"})
	verr := requireValidation(t, err, "email")
	assert.Equal(t, "already registered", verr.Reason)
}

func TestListArtists_InsertionOrderAndSearch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first := f.mustArtist(t, "Mira", "m@x.com")
	second := f.mustArtist(t, "Ana", "a@x.com")
	third := f.mustArtist(t, "Miro", "r@x.com")

	all, err := f.artists.ListArtists(ctx, domain_catalog.ArtistFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	again, err := f.artists.ListArtists(ctx, domain_catalog.ArtistFilter{})
	require.NoError(t, err)
	assert.Equal(t, all, again)

	found, err := f.artists.ListArtists(ctx, domain_catalog.ArtistFilter{Search: "MIR"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first.ID, found[0].ID)
	assert.Equal(t, third.ID, found[1].ID)

	page, err := f.artists.ListArtists(ctx, domain_catalog.ArtistFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)
}

func TestGetArtist_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.artists.GetArtist(context.Background(), "missing")
	requireNotFound(t, err, "artist")
}

func TestUpdateArtist(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	name := " 林夕 "
	bio := "lyricist"
	updated, err := f.artists.UpdateArtist(ctx, artist.ID, domain_catalog.ArtistPatch{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "林夕", updated.Name)
	assert.Equal(t, "linxi", updated.NamePinyin)
	assert.Equal(t, "lyricist", updated.Bio)
	assert.Equal(t, artist.ID, updated.ID)
	assert.Equal(t, artist.Email, updated.Email)

	blank := "  "
	_, err = f.artists.UpdateArtist(ctx, artist.ID, domain_catalog.ArtistPatch{Name: &blank})
	requireValidation(t, err, "name")

	_, err = f.artists.UpdateArtist(ctx, "missing", domain_catalog.ArtistPatch{Bio: &bio})
	requireNotFound(t, err, "artist")
}

func TestSetProfileImage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	err := f.artists.SetProfileImage(ctx, artist.ID, "image/png", nil)
	requireValidation(t, err, "file")

	err = f.artists.SetProfileImage(ctx, "missing", "image/png", []byte{1})
	requireNotFound(t, err, "artist")

	// 未知艺术家优先于缺失文件
	err = f.artists.SetProfileImage(ctx, "missing", "image/png", nil)
	requireNotFound(t, err, "artist")

	require.NoError(t, f.artists.SetProfileImage(ctx, artist.ID, "image/png", []byte{1, 2, 3}))
	stored, err := f.artists.GetArtist(ctx, artist.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ProfileImage)
	assert.Equal(t, "image/png", stored.ProfileImage.MediaType)
	assert.Equal(t, []byte{1, 2, 3}, stored.ProfileImage.Data)
}

func TestIngest_ValidationOrder(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	cases := []struct {
		name       string
		submission domain_catalog.Submission
		check      func(t *testing.T, err error)
	}{
		{
			name:       "unknown artist wins over valid title and file",
			submission: domain_catalog.Submission{ArtistID: "unknown", Title: "T", Data: []byte{1}},
			check:      func(t *testing.T, err error) { requireNotFound(t, err, "artist") },
		},
		{
			name:       "unknown artist wins over blank title and empty file",
			submission: domain_catalog.Submission{ArtistID: "unknown"},
			check:      func(t *testing.T, err error) { requireNotFound(t, err, "artist") },
		},
		{
			name:       "blank title wins over empty file",
			submission: domain_catalog.Submission{ArtistID: artist.ID, Title: "  "},
			check:      func(t *testing.T, err error) { requireValidation(t, err, "title") },
		},
		{
			name:       "empty file",
			submission: domain_catalog.Submission{ArtistID: artist.ID, Title: "Sunset", Data: []byte{}},
			check:      func(t *testing.T, err error) { requireValidation(t, err, "file") },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content, err := f.contents.Ingest(ctx, tc.submission)
			assert.Nil(t, content)
			tc.check(t, err)
		})
	}

	contents, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{})
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestIngest_EndToEnd(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	content, err := f.contents.Ingest(ctx, domain_catalog.Submission{
		ArtistID:     artist.ID,
		Title:        "Sunset",
		RawTags:      "nature, sky",
		FileName:     "sunset.jpg",
		DeclaredType: "image/jpeg",
		Data:         []byte{0xff, 0xd8, 0xff, 0xe0},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content.ID)
	assert.Equal(t, domain_catalog.CategoryImage, content.Category)
	assert.Equal(t, []string{"nature", "sky"}, content.Tags)
	assert.Equal(t, int64(4), content.File.Size)

	owner, err := f.catalog.ResolveOwner(ctx, content)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, artist.ID, owner.ID)
	assert.Equal(t, "Mira", owner.Name)

	listed, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, content.ID, listed[0].ID)
	assert.Equal(t, []string{"nature", "sky"}, listed[0].Tags)
	assert.Equal(t, domain_catalog.CategoryImage, listed[0].Category)

	again, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{})
	require.NoError(t, err)
	assert.Equal(t, listed, again)

	byID, err := f.catalog.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunset", byID.Title)
}

func TestIngest_CategoryFromDeclaredType(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	cases := map[string]domain_catalog.RenderingCategory{
		"video/mp4":       domain_catalog.CategoryVideo,
		"audio/mpeg":      domain_catalog.CategoryAudio,
		"application/pdf": domain_catalog.CategoryDocument,
		"":                domain_catalog.CategoryDocument,
		"Image/PNG":       domain_catalog.CategoryDocument,
	}
	for declared, want := range cases {
		content, err := f.contents.Ingest(ctx, domain_catalog.Submission{
			ArtistID:     artist.ID,
			Title:        "work",
			DeclaredType: declared,
			Data:         []byte("payload"),
		})
		require.NoError(t, err)
		assert.Equal(t, want, content.Category, declared)
	}

	videos, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{Category: domain_catalog.CategoryVideo})
	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestIngest_ProbeFailureIgnored(t *testing.T) {
	f := newFixture(t, stubProber{err: errors.New("bad container")})
	artist := f.mustArtist(t, "Mira", "m@x.com")

	content, err := f.contents.Ingest(context.Background(), domain_catalog.Submission{
		ArtistID: artist.ID, Title: "clip", DeclaredType: "video/mp4", Data: []byte("x"),
	})
	require.NoError(t, err)
	assert.Nil(t, content.MediaInfo)
}

func TestIngest_ProbeInfoStored(t *testing.T) {
	f := newFixture(t, stubProber{info: &domain_catalog.MediaInfo{Format: "MP3", Title: "Tide"}})
	artist := f.mustArtist(t, "Mira", "m@x.com")

	content, err := f.contents.Ingest(context.Background(), domain_catalog.Submission{
		ArtistID: artist.ID, Title: "song", DeclaredType: "audio/mpeg", Data: []byte("x"),
	})
	require.NoError(t, err)

	stored, err := f.catalog.GetContent(context.Background(), content.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MediaInfo)
	assert.Equal(t, "Tide", stored.MediaInfo.Title)
}

func TestIngest_StoreFailureLeavesNothing(t *testing.T) {
	f := newFixture(t, nil)
	artist := f.mustArtist(t, "Mira", "m@x.com")
	broken := NewContentUsecase(f.artists, failingContentRepo{f.store.Contents()}, nil, time.Second, nil)

	_, err := broken.Ingest(context.Background(), domain_catalog.Submission{
		ArtistID: artist.ID, Title: "x", Data: []byte("x"),
	})
	require.Error(t, err)
	assert.False(t, domain.IsNotFound(err))
	var verr *domain.ValidationError
	assert.False(t, errors.As(err, &verr))

	listed, err := f.catalog.ListContent(context.Background(), domain_catalog.ContentFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestResolveOwner_Unresolvable(t *testing.T) {
	f := newFixture(t, nil)

	owner, err := f.catalog.ResolveOwner(context.Background(), &domain_catalog.Content{ID: "c1", ArtistID: "gone"})
	assert.NoError(t, err)
	assert.Nil(t, owner)
}

func TestListArtistContent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mira := f.mustArtist(t, "Mira", "m@x.com")
	ana := f.mustArtist(t, "Ana", "a@x.com")

	for _, id := range []string{mira.ID, ana.ID, mira.ID} {
		_, err := f.contents.Ingest(ctx, domain_catalog.Submission{ArtistID: id, Title: "w", Data: []byte("x")})
		require.NoError(t, err)
	}

	contents, err := f.catalog.ListArtistContent(ctx, mira.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	for _, c := range contents {
		assert.Equal(t, mira.ID, c.ArtistID)
	}

	_, err = f.catalog.ListArtistContent(ctx, "missing", 0, 0)
	requireNotFound(t, err, "artist")
}

func TestListContent_Search(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	artist := f.mustArtist(t, "Mira", "m@x.com")

	_, err := f.contents.Ingest(ctx, domain_catalog.Submission{ArtistID: artist.ID, Title: "Sunset", RawTags: "Nature", Data: []byte("x")})
	require.NoError(t, err)
	_, err = f.contents.Ingest(ctx, domain_catalog.Submission{ArtistID: artist.ID, Title: "Harbor", Description: "city night", Data: []byte("x")})
	require.NoError(t, err)

	byTag, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{Search: "nature"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Sunset", byTag[0].Title)

	byDescription, err := f.catalog.ListContent(ctx, domain_catalog.ContentFilter{Search: "NIGHT"})
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Harbor", byDescription[0].Title)
}
