package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger writing to stdout. LOG_FORMAT=json selects
// the JSON handler; anything else gets text. Debug records are kept outside
// production.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug}
	if cfg.IsProduction() {
		opts.Level = slog.LevelInfo
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", "billing"))
}
