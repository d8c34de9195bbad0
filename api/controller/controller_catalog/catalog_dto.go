package controller_catalog

import (
	"encoding/base64"
	"time"

	"github.com/creatorhub/catalog/domain/domain_catalog"
)

// ArtistRequest POST /artists 请求体
type ArtistRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Bio         string            `json:"bio"`
	Location    string            `json:"location"`
	Website     string            `json:"website"`
	SocialLinks map[string]string `json:"social_links"`
}

func (r ArtistRequest) toInput() domain_catalog.ArtistInput {
	return domain_catalog.ArtistInput{
		Name:        r.Name,
		Email:       r.Email,
		Bio:         r.Bio,
		Location:    r.Location,
		Website:     r.Website,
		SocialLinks: r.SocialLinks,
	}
}

// ArtistPatchRequest PUT /artists/:id 请求体，缺省字段保持不变
type ArtistPatchRequest struct {
	Name        *string           `json:"name"`
	Bio         *string           `json:"bio"`
	Location    *string           `json:"location"`
	Website     *string           `json:"website"`
	SocialLinks map[string]string `json:"social_links"`
}

func (r ArtistPatchRequest) toPatch() domain_catalog.ArtistPatch {
	return domain_catalog.ArtistPatch{
		Name:        r.Name,
		Bio:         r.Bio,
		Location:    r.Location,
		Website:     r.Website,
		SocialLinks: r.SocialLinks,
	}
}

type ArtistResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Bio              string            `json:"bio"`
	Location         string            `json:"location"`
	Website          string            `json:"website"`
	SocialLinks      map[string]string `json:"social_links"`
	ProfileImage     string            `json:"profile_image,omitempty"`
	ProfileImageType string            `json:"profile_image_type,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func NewArtistResponse(artist *domain_catalog.Artist) ArtistResponse {
	resp := ArtistResponse{
		ID:          artist.ID,
		Name:        artist.Name,
		Email:       artist.Email,
		Bio:         artist.Bio,
		Location:    artist.Location,
		Website:     artist.Website,
		SocialLinks: artist.SocialLinks,
		CreatedAt:   artist.CreatedAt,
		UpdatedAt:   artist.UpdatedAt,
	}
	if resp.SocialLinks == nil {
		resp.SocialLinks = map[string]string{}
	}
	if artist.ProfileImage != nil {
		resp.ProfileImage = base64.StdEncoding.EncodeToString(artist.ProfileImage.Data)
		resp.ProfileImageType = artist.ProfileImage.MediaType
	}
	return resp
}

func NewArtistResponses(artists []*domain_catalog.Artist) []ArtistResponse {
	out := make([]ArtistResponse, 0, len(artists))
	for _, artist := range artists {
		out = append(out, NewArtistResponse(artist))
	}
	return out
}

// ArtistSummary 内容列表中内嵌的艺术家信息
type ArtistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type ContentResponse struct {
	ID          string                           `json:"id"`
	ArtistID    string                           `json:"artist_id"`
	Title       string                           `json:"title"`
	Description string                           `json:"description"`
	Tags        []string                         `json:"tags"`
	FileName    string                           `json:"file_name"`
	FileType    string                           `json:"file_type"`
	FileSize    int64                            `json:"file_size"`
	FileData    string                           `json:"file_data"`
	Category    domain_catalog.RenderingCategory `json:"category"`
	MediaInfo   *domain_catalog.MediaInfo        `json:"media_info,omitempty"`
	CreatedAt   time.Time                        `json:"created_at"`
	Artist      *ArtistSummary                   `json:"artist"`
}

// NewContentResponse owner 为 nil 时 artist 字段输出 null
func NewContentResponse(content *domain_catalog.Content, owner *domain_catalog.Artist) ContentResponse {
	resp := ContentResponse{
		ID:          content.ID,
		ArtistID:    content.ArtistID,
		Title:       content.Title,
		Description: content.Description,
		Tags:        content.Tags,
		FileName:    content.File.Name,
		FileType:    content.File.MediaType,
		FileSize:    content.File.Size,
		FileData:    base64.StdEncoding.EncodeToString(content.File.Data),
		Category:    content.Category,
		MediaInfo:   content.MediaInfo,
		CreatedAt:   content.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if owner != nil {
		resp.Artist = &ArtistSummary{
			ID:       owner.ID,
			Name:     owner.Name,
			Location: owner.Location,
		}
	}
	return resp
}
