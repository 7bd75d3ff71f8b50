// Package config loads runtime configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings for the API process.
type Config struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	Port          string        `envconfig:"APP_PORT" default:"8080"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	TxTimeout     time.Duration `envconfig:"TX_TIMEOUT" default:"5s"`
	BcryptCost    int           `envconfig:"BCRYPT_COST" default:"10"`
	MigrationsDir string        `envconfig:"MIGRATIONS_DIR" default:"migrations"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
