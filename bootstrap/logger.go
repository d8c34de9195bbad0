package bootstrap

import (
	"io"
	"log/slog"
)

// NewLogger 生产环境输出 JSON，其余环境输出文本
func NewLogger(env *Env, w io.Writer) *slog.Logger {
	if env.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
