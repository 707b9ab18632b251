// Package config loads calcpad settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Addr        string        `yaml:"addr"`
	LogLevel    string        `yaml:"log_level"`
	ServiceName string        `yaml:"service_name"`
	Telemetry   bool          `yaml:"telemetry"`
	Store       string        `yaml:"store"`
	SessionTTL  time.Duration `yaml:"session_ttl"` // idle expiry in both stores; 0 keeps sessions forever
	Redis       Redis         `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		LogLevel:    "info",
		ServiceName: "calcpad",
		Store:       StoreMemory,
		SessionTTL:  24 * time.Hour,
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "calcpad:session:",
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env is fine,
// and values already in the environment win over .env entries.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
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

	str("CALCPAD_ADDR", &c.Addr)
	str("CALCPAD_LOG_LEVEL", &c.LogLevel)
	str("OTEL_SERVICE_NAME", &c.ServiceName)
	str("CALCPAD_STORE", &c.Store)
	str("CALCPAD_REDIS_ADDR", &c.Redis.Addr)
	str("CALCPAD_REDIS_PASSWORD", &c.Redis.Password)
	str("CALCPAD_REDIS_PREFIX", &c.Redis.Prefix)

	if v, ok := lookup("CALCPAD_TELEMETRY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CALCPAD_TELEMETRY: %w", err)
		}
		c.Telemetry = b
	}

	if v, ok := lookup("CALCPAD_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CALCPAD_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}

	if v, ok := lookup("CALCPAD_SESSION_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CALCPAD_SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}

	return nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreRedis))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL))
	}

	if c.Store == StoreRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis store needs an address"))
	}

	return errors.Join(errs...)
}
