package config

import (
	"time"

	"github.com/goatkit/goatsession/internal/constants"
)

// LoginTimeout returns the effective login timeout for c.
func (c *Config) LoginTimeout() time.Duration {
	if c == nil {
		return constants.DefaultLoginTimeout
	}
	return ResolveLoginTimeout(c.Session.LoginTimeout)
}

// ResolveLoginTimeout picks the effective timeout for a configured value.
// Zero or negative means the default; anything else is clamped.
func ResolveLoginTimeout(configured time.Duration) time.Duration {
	if configured <= 0 {
		return constants.DefaultLoginTimeout
	}
	return clampLoginTimeout(configured)
}

func clampLoginTimeout(value time.Duration) time.Duration {
	if value < constants.MinLoginTimeout {
		return constants.MinLoginTimeout
	}
	if value > constants.MaxLoginTimeout {
		return constants.MaxLoginTimeout
	}
	return value
}
