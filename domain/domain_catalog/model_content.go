package domain_catalog

import "time"

// FileObject 上传文件的原始字节与声明类型
type FileObject struct {
	Name      string `bson:"name"`
	MediaType string `bson:"media_type"`
	Size      int64  `bson:"size"`
	Data      []byte `bson:"data"`
}

// MediaInfo 媒体探测结果，探测失败时为空
type MediaInfo struct {
	Extension       string  `bson:"extension,omitempty" json:"extension,omitempty"`
	Format          string  `bson:"format,omitempty" json:"format,omitempty"`
	Title           string  `bson:"title,omitempty" json:"title,omitempty"`
	Artist          string  `bson:"artist,omitempty" json:"artist,omitempty"`
	Album           string  `bson:"album,omitempty" json:"album,omitempty"`
	Genre           string  `bson:"genre,omitempty" json:"genre,omitempty"`
	Year            int     `bson:"year,omitempty" json:"year,omitempty"`
	DurationSeconds float64 `bson:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	TrackCount      int     `bson:"track_count,omitempty" json:"track_count,omitempty"`
}

type Content struct {
	// 系统保留字段
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	CreatedAt time.Time `bson:"created_at"`

	// 关系ID
	ArtistID string `bson:"artist_id"`

	// 基础元数据
	Title       string   `bson:"title"`
	Description string   `bson:"description"`
	Tags        []string `bson:"tags"`

	File      FileObject        `bson:"file"`
	Category  RenderingCategory `bson:"category"`
	MediaInfo *MediaInfo        `bson:"media_info,omitempty"`
}

// Submission 一次内容提交的原始输入
type Submission struct {
	ArtistID     string
	Title        string
	Description  string
	RawTags      string
	FileName     string
	DeclaredType string
	Data         []byte
}

type ContentFilter struct {
	ArtistID string
	Search   string
	Category RenderingCategory // 0 表示不过滤
	Skip     int64
	Limit    int64
}
