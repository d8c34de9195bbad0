package domain_catalog

import "time"

type ProfileImage struct {
	MediaType string `bson:"media_type"`
	Data      []byte `bson:"data"`
}

type Artist struct {
	// 系统保留字段
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"` // 插入序号，列表按此升序
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`

	// 身份字段
	Name       string `bson:"name"`
	NamePinyin string `bson:"name_pinyin"` // 艺术家名称拼音，用于检索
	Email      string `bson:"email"`

	// 可编辑资料
	Bio          string            `bson:"bio"`
	Location     string            `bson:"location"`
	Website      string            `bson:"website"`
	SocialLinks  map[string]string `bson:"social_links,omitempty"`
	ProfileImage *ProfileImage     `bson:"profile_image,omitempty"`
}

// ArtistInput 创建艺术家的原始输入
type ArtistInput struct {
	Name        string
	Email       string
	Bio         string
	Location    string
	Website     string
	SocialLinks map[string]string
}

// ArtistPatch 资料编辑，nil 字段保持不变；ID 与 Email 不可修改
type ArtistPatch struct {
	Name        *string
	NamePinyin  *string // 由 Name 推导，调用方无需设置
	Bio         *string
	Location    *string
	Website     *string
	SocialLinks map[string]string
}

func (p ArtistPatch) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.Location == nil && p.Website == nil && p.SocialLinks == nil
}

type ArtistFilter struct {
	Search string
	Skip   int64
	Limit  int64
}
