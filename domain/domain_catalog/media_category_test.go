package domain_catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]RenderingCategory{
		"image/png":                CategoryImage,
		"image/jpeg":               CategoryImage,
		"image/":                   CategoryImage,
		"video/mp4":                CategoryVideo,
		"audio/mpeg":               CategoryAudio,
		"audio/x-flac":             CategoryAudio,
		"application/pdf":          CategoryDocument,
		"application/octet-stream": CategoryDocument,
		"text/plain":               CategoryDocument,
		"":                         CategoryDocument,
		"image":                    CategoryDocument,
		"Image/png":                CategoryDocument,
		"VIDEO/MP4":                CategoryDocument,
		" image/png":               CategoryDocument,
		"not a mime type":          CategoryDocument,
	}

	for declared, want := range cases {
		assert.Equal(t, want, Classify(declared), "declared type %q", declared)
	}
}

func TestRenderingCategoryText(t *testing.T) {
	for _, category := range []RenderingCategory{CategoryImage, CategoryAudio, CategoryVideo, CategoryDocument} {
		text, err := category.MarshalText()
		require.NoError(t, err)

		var parsed RenderingCategory
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, category, parsed)
	}

	_, err := RenderingCategory(0).MarshalText()
	assert.Error(t, err)

	_, err = ParseRenderingCategory("hologram")
	assert.Error(t, err)
}

func TestRenderingCategoryJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]RenderingCategory{"category": CategoryVideo})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"video"}`, string(payload))
}
