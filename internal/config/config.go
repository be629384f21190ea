// Package config loads goatsession configuration from YAML and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/goatkit/goatsession/internal/constants"
)

// Config is the root configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app" yaml:"app"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env string `mapstructure:"env" yaml:"env"`
}

// LogConfig controls logging verbosity.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// SessionConfig controls session.Create.
type SessionConfig struct {
	LoginTimeout time.Duration `mapstructure:"login_timeout" yaml:"login_timeout"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	CreateRateLimit int    `mapstructure:"create_rate_limit" yaml:"create_rate_limit"`
}

var (
	mu      sync.RWMutex
	current *Config
)

// Get returns the process configuration, or nil if none has been set.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process configuration.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		App:     AppConfig{Env: "development"},
		Log:     LogConfig{Level: LevelInfo},
		Session: SessionConfig{LoginTimeout: constants.DefaultLoginTimeout},
		Server: ServerConfig{
			Addr:            constants.DefaultServerAddr,
			CreateRateLimit: constants.DefaultCreateRateLimit,
		},
	}
}

// NewViper returns a viper instance with defaults and environment binding set
// up. When path is empty, GOATSESSION_CONFIG is consulted and then
// ./goatsession.yaml is tried.
func NewViper(path string) *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault("app.env", def.App.Env)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("session.login_timeout", def.Session.LoginTimeout)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.create_rate_limit", def.Server.CreateRateLimit)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(constants.EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("goatsession")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return v
}

// Load reads configuration from path (see NewViper) and validates it.
// A missing file is only an error when it was named explicitly.
func Load(path string) (*Config, error) {
	v := NewViper(path)
	if err := ReadIn(v); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// ReadIn reads the config file behind v. A file that was searched for but not
// found is not an error.
func ReadIn(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be repaired by clamping.
func (c *Config) Validate() error {
	if _, ok := normalizeLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if c.Session.LoginTimeout < 0 {
		return fmt.Errorf("config: session.login_timeout must not be negative, got %s", c.Session.LoginTimeout)
	}
	if c.Server.CreateRateLimit < 0 {
		return fmt.Errorf("config: server.create_rate_limit must not be negative, got %d", c.Server.CreateRateLimit)
	}
	return nil
}

// Watch reloads configuration whenever the file behind v changes. Valid
// reloads replace the process configuration before onChange runs.
func Watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := FromViper(v)
		if err == nil {
			Set(cfg)
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}
