package domain_util

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/cases"
)

// PinyinKey 返回名称中汉字的拼音串，不含汉字时返回空串
func PinyinKey(name string) string {
	return strings.Join(pinyin.LazyConvert(name, nil), "")
}

// FoldContains 大小写无关的子串匹配
func FoldContains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(haystack), folder.String(needle))
}

// FoldContainsAny 任一字段匹配即返回 true
func FoldContainsAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if FoldContains(field, needle) {
			return true
		}
	}
	return false
}
