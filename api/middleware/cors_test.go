package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS(allowed))
	engine.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
	return engine
}

func TestCORS_AllowList(t *testing.T) {
	engine := newEngine([]string{"https://a.example"})

	cases := []struct {
		origin string
		want   string
	}{
		{"https://a.example", "https://a.example"},
		{"https://evil.example", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", tc.origin)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tc.want, rec.Header().Get("Access-Control-Allow-Origin"), tc.origin)
	}
}

func TestCORS_EmptyListAllowsAll(t *testing.T) {
	assert.True(t, originAllowed("https://any.example", nil))
	assert.True(t, originAllowed("https://any.example", []string{"*"}))
	assert.False(t, originAllowed("https://any.example", []string{"https://b.example"}))
}
