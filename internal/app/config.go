package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/readling/readling-backend/internal/data/db"
	"github.com/readling/readling-backend/internal/platform/envutil"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogMode  string `yaml:"log_mode"`

	Postgres db.PostgresConfig `yaml:"postgres"`

	RedisAddr     string        `yaml:"redis_addr"`
	BadgeCacheTTL time.Duration `yaml:"badge_cache_ttl"`
	AutoMigrate   bool          `yaml:"auto_migrate"`
}

// LoadConfig reads env with defaults, then lets an optional YAML file named by
// CONFIG_FILE override the env-derived values.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr: envutil.String("HTTP_ADDR", ":8080"),
		LogMode:  envutil.String("LOG_MODE", "development"),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "readling"),
		},
		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		BadgeCacheTTL: time.Duration(envutil.Int("BADGE_CACHE_TTL_SECONDS", 300)) * time.Second,
		AutoMigrate:   envutil.Bool("AUTO_MIGRATE", true),
	}

	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}
	return cfg, nil
}
