package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

func InitLogger(env string) {
	slog.SetDefault(NewLogger(os.Stdout, env))
}

// NewLogger returns a tint logger. Debug output is enabled only in dev.
func NewLogger(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "" || env == "dev" {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    env == "prod",
	})

	return slog.New(handler)
}
