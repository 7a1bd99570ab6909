package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig holds the two independent signing secrets and the token
// lifetimes the login flow hands to the token service. Missing secrets are
// a fatal startup condition, never a per-request error.
type AuthConfig struct {
	AccessSecret  string        `env:"ACCESS_SECRET_KEY,  required"`
	RefreshSecret string        `env:"REFRESH_SECRET_KEY, required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,   default=30m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL,  default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.AccessSecret == cfg.Auth.RefreshSecret {
		return nil, fmt.Errorf("load config: access and refresh secrets must differ")
	}
	return &cfg, nil
}
