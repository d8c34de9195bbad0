package domain_catalog

import (
	"fmt"
	"strings"
)

// RenderingCategory 内容的渲染类别，由声明的媒体类型推导
type RenderingCategory int

const (
	CategoryImage RenderingCategory = iota + 1
	CategoryAudio
	CategoryVideo
	CategoryDocument
)

var categoryNames = map[RenderingCategory]string{
	CategoryImage:    "image",
	CategoryAudio:    "audio",
	CategoryVideo:    "video",
	CategoryDocument: "document",
}

// Classify 按大小写敏感的前缀匹配媒体类型，其余一律归为 Document
func Classify(declaredType string) RenderingCategory {
	switch {
	case strings.HasPrefix(declaredType, "image/"):
		return CategoryImage
	case strings.HasPrefix(declaredType, "video/"):
		return CategoryVideo
	case strings.HasPrefix(declaredType, "audio/"):
		return CategoryAudio
	default:
		return CategoryDocument
	}
}

func (c RenderingCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RenderingCategory(%d)", int(c))
}

func (c RenderingCategory) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c RenderingCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown rendering category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *RenderingCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseRenderingCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseRenderingCategory 解析查询参数中的类别名称
func ParseRenderingCategory(name string) (RenderingCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for category, categoryName := range categoryNames {
		if categoryName == normalized {
			return category, nil
		}
	}
	return 0, fmt.Errorf("unknown rendering category %q", name)
}
