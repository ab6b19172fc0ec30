// Package logger はslogのデフォルトロガーを設定から初期化します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init は level/format に従ってデフォルトロガーを差し替え、生成したロガーを返します。
// 不明な値は info / json として扱います。
func Init(level, format string) *slog.Logger {
	l := New(os.Stdout, level, format)
	slog.SetDefault(l)
	return l
}

// New は w に出力するロガーを生成します。
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel はログレベル文字列を slog.Level に変換します。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
