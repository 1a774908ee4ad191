package configs

import (
	"log/slog"
	"strings"
)

// Logger selects the minimum level and the output encoding of the
// structured logger. Level accepts "debug", "info", "warn" and "error";
// Format accepts "text" and "json". Unknown values fall back to the
// defaults rather than failing startup.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// SlogLevel maps the configured level onto slog.Level, defaulting to info.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogFormat normalises the configured format, defaulting to "text".
func (c Logger) SlogFormat() string {
	if strings.ToLower(c.Format) == "json" {
		return "json"
	}
	return "text"
}
