package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017" validate:"required"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"charity_merch" validate:"required"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"72h"`

	// Optional; when unset, lifecycle events are not published.
	RabbitURL string `env:"RABBIT_URL"`

	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis"`

	// Flat shipping fee applied to every order at creation time.
	ShippingFee float64 `env:"SHIPPING_FEE" envDefault:"60" validate:"gte=0"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	// Best effort; a missing .env file is fine in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := configValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
