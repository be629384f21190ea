package config

import (
	"errors"
	"strings"
)

// Log levels understood by the loggers in this module.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ErrInvalidLogLevel is returned by Validate for unknown log levels.
var ErrInvalidLogLevel = errors.New("config: invalid log level")

// EffectiveLevel normalizes the configured log level.
// Supported values: "debug", "info", "warn", "error" plus a few aliases.
// An empty value means info.
func (c *LogConfig) EffectiveLevel() string {
	if c == nil {
		return LevelInfo
	}
	level, _ := normalizeLevel(c.Level)
	return level
}

// Debug reports whether debug logging is enabled.
func (c *LogConfig) Debug() bool {
	return c.EffectiveLevel() == LevelDebug
}

func normalizeLevel(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "default":
		return LevelInfo, true
	case "debug", "trace", "verbose":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	default:
		// Unknown value; fall back to info so a typo never silences logging
		return LevelInfo, false
	}
}
