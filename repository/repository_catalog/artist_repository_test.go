package repository_catalog

import (
	"context"
	"testing"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/mongo"
	"github.com/creatorhub/catalog/mongo/mongo_fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newArtist(id, name, email string) *domain_catalog.Artist {
	return &domain_catalog.Artist{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestArtistRepository_CreateAssignsSeq(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()

	first := newArtist("a1", "Mira", "mira@example.com")
	second := newArtist("a2", "Oren", "oren@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)

	stored, err := repo.GetByID(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Seq)
	assert.Equal(t, "Oren", stored.Name)
	assert.True(t, created.Equal(stored.CreatedAt))
}

func TestArtistRepository_SequencePerCollection(t *testing.T) {
	db := mongo_fake.NewDatabase()
	artists := NewArtistRepository(db, domain.CollectionCatalogArtist)
	contents := NewContentRepository(db, domain.CollectionCatalogContent)
	ctx := context.Background()

	require.NoError(t, artists.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))
	content := &domain_catalog.Content{ID: "c1", ArtistID: "a1", Title: "Tide", CreatedAt: created}
	require.NoError(t, contents.Create(ctx, content))

	assert.Equal(t, int64(1), content.Seq)
	assert.Equal(t, 2, db.Coll(domain.CollectionCatalogCounters).Len())
}

func TestArtistRepository_CreateDuplicate(t *testing.T) {
	db := mongo_fake.NewDatabase()
	require.NoError(t, mongo.CreateIndexes(context.Background(), db, nil))
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))

	err := repo.Create(ctx, newArtist("a1", "Other", "other@example.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	err = repo.Create(ctx, newArtist("a2", "Mira Two", "mira@example.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Contains(t, err.Error(), domain.CollectionCatalogArtist)

	assert.Equal(t, 1, db.Coll(domain.CollectionCatalogArtist).Len())
}

func TestArtistRepository_GetByIDMissing(t *testing.T) {
	repo := NewArtistRepository(mongo_fake.NewDatabase(), domain.CollectionCatalogArtist)

	_, err := repo.GetByID(context.Background(), "missing")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "artist", nf.Entity)
	assert.Equal(t, "missing", nf.ID)

	_, err = repo.GetByID(context.Background(), "")
	assert.True(t, domain.IsNotFound(err))
}

func TestArtistRepository_GetByEmail(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))

	artist, err := repo.GetByEmail(ctx, "mira@example.com")
	require.NoError(t, err)
	require.NotNil(t, artist)
	assert.Equal(t, "a1", artist.ID)

	artist, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, artist)
}

func TestArtistRepository_ListFilterAndOptions(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))
	require.NoError(t, repo.Create(ctx, newArtist("a2", "Oren", "oren@example.com")))

	artists, err := repo.List(ctx, domain_catalog.ArtistFilter{Search: "a.b", Skip: 5, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, artists, 2)

	call, ok := db.Coll(domain.CollectionCatalogArtist).LastFind()
	require.True(t, ok)

	pattern := bson.M{"$regex": `a\.b`, "$options": "i"}
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"name": pattern},
		{"name_pinyin": pattern},
		{"bio": pattern},
		{"location": pattern},
	}}, call.Filter)

	require.Len(t, call.Options, 1)
	opts := call.Options[0]
	assert.Equal(t, bson.D{{Key: "seq", Value: 1}}, opts.Sort)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(5), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
}

func TestArtistRepository_ListWithoutSearch(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)

	artists, err := repo.List(context.Background(), domain_catalog.ArtistFilter{})
	require.NoError(t, err)
	assert.Empty(t, artists)

	call, ok := db.Coll(domain.CollectionCatalogArtist).LastFind()
	require.True(t, ok)
	assert.Equal(t, bson.M{}, call.Filter)
	require.Len(t, call.Options, 1)
	assert.Nil(t, call.Options[0].Skip)
	assert.Nil(t, call.Options[0].Limit)
	assert.Equal(t, bson.D{{Key: "seq", Value: 1}}, call.Options[0].Sort)
}

func TestArtistRepository_Update(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))

	name := "Mira Vale"
	bio := "ambient"
	later := created.Add(time.Hour)
	updated, err := repo.Update(ctx, "a1", domain_catalog.ArtistPatch{
		Name:        &name,
		Bio:         &bio,
		SocialLinks: map[string]string{"site": "https://mira.example"},
	}, later)
	require.NoError(t, err)
	assert.Equal(t, "Mira Vale", updated.Name)
	assert.Equal(t, "ambient", updated.Bio)
	assert.Equal(t, "mira@example.com", updated.Email)
	assert.Equal(t, "https://mira.example", updated.SocialLinks["site"])
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.Equal(t, int64(1), updated.Seq)

	_, err = repo.Update(ctx, "missing", domain_catalog.ArtistPatch{Name: &name}, later)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)

	_, err = repo.Update(ctx, "", domain_catalog.ArtistPatch{Name: &name}, later)
	assert.True(t, domain.IsNotFound(err))
}

func TestArtistRepository_SetProfileImage(t *testing.T) {
	db := mongo_fake.NewDatabase()
	repo := NewArtistRepository(db, domain.CollectionCatalogArtist)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newArtist("a1", "Mira", "mira@example.com")))

	image := domain_catalog.ProfileImage{MediaType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	require.NoError(t, repo.SetProfileImage(ctx, "a1", image, created.Add(time.Minute)))

	artist, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, artist.ProfileImage)
	assert.Equal(t, "image/png", artist.ProfileImage.MediaType)
	assert.Equal(t, image.Data, artist.ProfileImage.Data)

	err = repo.SetProfileImage(ctx, "zz", image, created)
	assert.True(t, domain.IsNotFound(err))
}
