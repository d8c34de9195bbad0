package domain_util

import "strings"

// NormalizeTags 将逗号分隔的标签文本拆分为有序标签列表
// 去除首尾空白并丢弃空标签；大小写不同的标签视为不同标签
func NormalizeTags(raw string) []string {
	tags := make([]string, 0)
	for _, piece := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
