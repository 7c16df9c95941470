// Package config resolves service settings from .env, the environment and an
// optional YAML file, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds every runtime setting.
type Config struct {
	Addr        string        `yaml:"addr"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	Store       string        `yaml:"store"`
	Redis       RedisConfig   `yaml:"redis"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	OTelEnabled bool          `yaml:"otel_enabled"`
}

// RedisConfig addresses the Redis session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "json",
		Store:     StoreMemory,
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "calculator:session:",
		},
	}
}

// Load builds a Config. path may be empty; a named file that does not exist
// is an error.
func Load(path string) (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("CALC_ADDR", &c.Addr)
	str("CALC_LOG_LEVEL", &c.LogLevel)
	str("CALC_LOG_FORMAT", &c.LogFormat)
	str("CALC_STORE", &c.Store)
	str("CALC_REDIS_ADDR", &c.Redis.Addr)
	str("CALC_REDIS_PASSWORD", &c.Redis.Password)
	str("CALC_REDIS_PREFIX", &c.Redis.Prefix)

	if v, ok := lookup("CALC_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CALC_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	if v, ok := lookup("CALC_SESSION_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CALC_SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}
	if v, ok := lookup("CALC_OTEL_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CALC_OTEL_ENABLED: %w", err)
		}
		c.OTelEnabled = enabled
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreRedis)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL)
	}
	if c.Addr == "" {
		return errors.New("listen address must not be empty")
	}
	return nil
}
