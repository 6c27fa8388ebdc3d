package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TrackingMore TrackingMoreConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Refresh      RefreshConfig

	CourierCacheTTL time.Duration `env:"COURIER_CACHE_TTL, default=10m"`
}

type TrackingMoreConfig struct {
	APIKey  string        `env:"TRACKINGMORE_API_KEY, required"`
	BaseURL string        `env:"TRACKINGMORE_BASE_URL, default=https://api.trackingmore.com/v4"`
	Timeout time.Duration `env:"TRACKINGMORE_TIMEOUT,  default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tracking_aggregator"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type RefreshConfig struct {
	Workers  int           `env:"REFRESH_WORKERS,  default=4"`
	Cooldown time.Duration `env:"REFRESH_COOLDOWN, default=5m"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// OperatorRoutesEnabled reports whether a JWT secret is configured.
func (c *Config) OperatorRoutesEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
