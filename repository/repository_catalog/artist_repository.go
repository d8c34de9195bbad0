package repository_catalog

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/mongo"
	"github.com/creatorhub/catalog/repository"
	"go.mongodb.org/mongo-driver/bson"
)

type artistRepository struct {
	base *repository.BaseMongoRepository[domain_catalog.Artist]
}

func NewArtistRepository(db mongo.Database, collection string) domain_catalog.ArtistRepository {
	return &artistRepository{
		base: repository.NewBaseMongoRepository[domain_catalog.Artist](db, collection),
	}
}

func (r *artistRepository) Create(ctx context.Context, artist *domain_catalog.Artist) error {
	seq, err := r.base.NextSequence(ctx)
	if err != nil {
		return err
	}
	artist.Seq = seq
	if err := r.base.Create(ctx, artist); err != nil {
		return fmt.Errorf("artist insert failed: %w", err)
	}
	return nil
}

func (r *artistRepository) GetByID(ctx context.Context, id string) (*domain_catalog.Artist, error) {
	artist, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("artist lookup failed: %w", err)
	}
	if artist == nil {
		return nil, domain.NewNotFoundError("artist", id)
	}
	return artist, nil
}

func (r *artistRepository) GetByEmail(ctx context.Context, email string) (*domain_catalog.Artist, error) {
	artist, err := r.base.GetOneByFilter(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("artist lookup by email failed: %w", err)
	}
	return artist, nil
}

func (r *artistRepository) List(ctx context.Context, filter domain_catalog.ArtistFilter) ([]*domain_catalog.Artist, error) {
	query := bson.M{}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"name_pinyin": pattern},
			{"bio": pattern},
			{"location": pattern},
		}
	}

	artists, err := r.base.GetPaginatedSorted(ctx, query, filter.Skip, filter.Limit, bson.D{{Key: "seq", Value: 1}})
	if err != nil {
		return nil, fmt.Errorf("artist list failed: %w", err)
	}
	return artists, nil
}

func (r *artistRepository) Update(
	ctx context.Context,
	id string,
	patch domain_catalog.ArtistPatch,
	updatedAt time.Time,
) (*domain_catalog.Artist, error) {
	set := bson.M{"updated_at": updatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.NamePinyin != nil {
		set["name_pinyin"] = *patch.NamePinyin
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}
	if patch.SocialLinks != nil {
		set["social_links"] = patch.SocialLinks
	}

	matched, err := r.base.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("artist update failed: %w", err)
	}
	if !matched {
		return nil, domain.NewNotFoundError("artist", id)
	}
	return r.GetByID(ctx, id)
}

func (r *artistRepository) SetProfileImage(
	ctx context.Context,
	id string,
	image domain_catalog.ProfileImage,
	updatedAt time.Time,
) error {
	matched, err := r.base.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"profile_image": image,
		"updated_at":    updatedAt,
	}})
	if err != nil {
		return fmt.Errorf("artist profile image update failed: %w", err)
	}
	if !matched {
		return domain.NewNotFoundError("artist", id)
	}
	return nil
}
