package media_probe

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abema/go-mp4"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/util/audio/audio_wav"
	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
)

const fallbackMediaType = "application/octet-stream"

// ResolveMediaType 确定上传文件的声明类型
// 优先使用请求头，其次按文件头魔数识别，再按扩展名识别
func ResolveMediaType(header, fileName string, data []byte) string {
	if declared := strings.TrimSpace(header); declared != "" {
		return declared
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext != "" {
		if kind := filetype.GetType(ext); kind != filetype.Unknown {
			return kind.MIME.Value
		}
	}
	return fallbackMediaType
}

// Prober 按类别提取附加媒体信息
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

var _ domain_catalog.MediaProber = (*Prober)(nil)

// Inspect 返回的错误只表示探测失败，不影响内容本身的有效性
func (p *Prober) Inspect(category domain_catalog.RenderingCategory, data []byte) (*domain_catalog.MediaInfo, error) {
	if len(data) == 0 {
		return nil, nil
	}

	info := &domain_catalog.MediaInfo{}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		info.Extension = kind.Extension
	}

	var err error
	switch category {
	case domain_catalog.CategoryAudio:
		err = inspectAudio(data, info)
	case domain_catalog.CategoryVideo:
		err = inspectVideo(data, info)
	}

	if *info == (domain_catalog.MediaInfo{}) {
		return nil, err
	}
	return info, err
}

func inspectAudio(data []byte, info *domain_catalog.MediaInfo) error {
	metadata, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		// dhowden/tag 不支持 RIFF/WAVE，退回到 INFO 块解析
		wav, wavErr := audio_wav.ReadMetadata(data)
		if wavErr == nil {
			info.Format = "WAV"
			info.Title = wav.Title
			info.Artist = wav.Artist
			info.Album = wav.Product
			info.Genre = wav.Genre
			info.DurationSeconds = wav.DurationSeconds
			return nil
		}
		if !errors.Is(wavErr, audio_wav.ErrNotWave) {
			return fmt.Errorf("read wav metadata: %w", wavErr)
		}
		return fmt.Errorf("read audio tags: %w", err)
	}
	info.Format = string(metadata.FileType())
	info.Title = metadata.Title()
	info.Artist = metadata.Artist()
	info.Album = metadata.Album()
	info.Genre = metadata.Genre()
	info.Year = metadata.Year()
	return nil
}

func inspectVideo(data []byte, info *domain_catalog.MediaInfo) error {
	probe, err := mp4.Probe(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("probe mp4 container: %w", err)
	}
	info.Format = "MP4"
	if probe.Timescale > 0 {
		info.DurationSeconds = float64(probe.Duration) / float64(probe.Timescale)
	}
	info.TrackCount = len(probe.Tracks)
	return nil
}
