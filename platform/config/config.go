// Package config reads the server settings from the environment. A .env
// file in the working directory is loaded first.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every setting of the server. Empty Redis or Postgres
// addresses disable that sink.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":4101"`
	SocketAddr    string `env:"SOCKET_ADDR" envDefault:":8000"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"secret"`

	RedisURL   string        `env:"REDIS_URL"`
	JournalTTL time.Duration `env:"JOURNAL_TTL" envDefault:"24h"`

	DBUser     string `env:"DB_USER"`
	DBAddr     string `env:"DB_ADDR"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Seed fixes the dice of every table; 0 draws a random seed per table.
	Seed int64 `env:"SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
