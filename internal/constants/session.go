package constants

import "time"

// Login timeout bounds applied to session.Create.
const (
	DefaultLoginTimeout = 30 * time.Second
	MinLoginTimeout     = time.Second
	MaxLoginTimeout     = 5 * time.Minute
)

// Server defaults.
const (
	DefaultServerAddr      = ":8080"
	DefaultCreateRateLimit = 600 // requests per hour per client IP
	ShutdownTimeout        = 10 * time.Second
)

// EnvPrefix is the environment variable prefix read by the config loader.
const EnvPrefix = "GOATSESSION"
