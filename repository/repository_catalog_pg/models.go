package repository_catalog_pg

import (
	"time"

	"github.com/creatorhub/catalog/domain/domain_catalog"
)

type artistModel struct {
	ID               string            `gorm:"column:id;primaryKey"`
	Seq              int64             `gorm:"column:seq;autoIncrement;uniqueIndex"`
	Name             string            `gorm:"column:name;not null"`
	NamePinyin       string            `gorm:"column:name_pinyin;index"`
	Email            string            `gorm:"column:email;not null;uniqueIndex"`
	Bio              string            `gorm:"column:bio"`
	Location         string            `gorm:"column:location"`
	Website          string            `gorm:"column:website"`
	SocialLinks      map[string]string `gorm:"column:social_links;type:jsonb;serializer:json"`
	ProfileMediaType string            `gorm:"column:profile_media_type"`
	ProfileImage     []byte            `gorm:"column:profile_image"`
	CreatedAt        time.Time         `gorm:"column:created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at"`
}

func (artistModel) TableName() string { return "catalog_artists" }

type contentModel struct {
	ID            string                    `gorm:"column:id;primaryKey"`
	Seq           int64                     `gorm:"column:seq;autoIncrement;uniqueIndex"`
	ArtistID      string                    `gorm:"column:artist_id;not null;index"`
	Title         string                    `gorm:"column:title;not null"`
	Description   string                    `gorm:"column:description"`
	Tags          []string                  `gorm:"column:tags;type:jsonb;serializer:json"`
	FileName      string                    `gorm:"column:file_name"`
	FileMediaType string                    `gorm:"column:file_media_type"`
	FileSize      int64                     `gorm:"column:file_size"`
	FileData      []byte                    `gorm:"column:file_data;not null"`
	Category      int                       `gorm:"column:category;index"`
	MediaInfo     *domain_catalog.MediaInfo `gorm:"column:media_info;type:jsonb;serializer:json"`
	CreatedAt     time.Time                 `gorm:"column:created_at"`
}

func (contentModel) TableName() string { return "catalog_contents" }

func artistModelFromEntity(artist *domain_catalog.Artist) artistModel {
	row := artistModel{
		ID:          artist.ID,
		Name:        artist.Name,
		NamePinyin:  artist.NamePinyin,
		Email:       artist.Email,
		Bio:         artist.Bio,
		Location:    artist.Location,
		Website:     artist.Website,
		SocialLinks: artist.SocialLinks,
		CreatedAt:   artist.CreatedAt.UTC(),
		UpdatedAt:   artist.UpdatedAt.UTC(),
	}
	if artist.ProfileImage != nil {
		row.ProfileMediaType = artist.ProfileImage.MediaType
		row.ProfileImage = artist.ProfileImage.Data
	}
	return row
}

func (row artistModel) toEntity() *domain_catalog.Artist {
	artist := &domain_catalog.Artist{
		ID:          row.ID,
		Seq:         row.Seq,
		Name:        row.Name,
		NamePinyin:  row.NamePinyin,
		Email:       row.Email,
		Bio:         row.Bio,
		Location:    row.Location,
		Website:     row.Website,
		SocialLinks: row.SocialLinks,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if len(row.ProfileImage) > 0 {
		artist.ProfileImage = &domain_catalog.ProfileImage{
			MediaType: row.ProfileMediaType,
			Data:      row.ProfileImage,
		}
	}
	return artist
}

func contentModelFromEntity(content *domain_catalog.Content) contentModel {
	tags := content.Tags
	if tags == nil {
		tags = []string{}
	}
	return contentModel{
		ID:            content.ID,
		ArtistID:      content.ArtistID,
		Title:         content.Title,
		Description:   content.Description,
		Tags:          tags,
		FileName:      content.File.Name,
		FileMediaType: content.File.MediaType,
		FileSize:      content.File.Size,
		FileData:      content.File.Data,
		Category:      int(content.Category),
		MediaInfo:     content.MediaInfo,
		CreatedAt:     content.CreatedAt.UTC(),
	}
}

func (row contentModel) toEntity() *domain_catalog.Content {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain_catalog.Content{
		ID:          row.ID,
		Seq:         row.Seq,
		ArtistID:    row.ArtistID,
		Title:       row.Title,
		Description: row.Description,
		Tags:        tags,
		File: domain_catalog.FileObject{
			Name:      row.FileName,
			MediaType: row.FileMediaType,
			Size:      row.FileSize,
			Data:      row.FileData,
		},
		Category:  domain_catalog.RenderingCategory(row.Category),
		MediaInfo: row.MediaInfo,
		CreatedAt: row.CreatedAt.UTC(),
	}
}
