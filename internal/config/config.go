package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Bornes imposées au TTL des jetons de run, quelle que soit la configuration.
const (
	MinRunTokenTTL = 1 * time.Second
	MaxRunTokenTTL = 15 * time.Minute
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Connexion PostgreSQL : DATABASE_URL prime sur les champs individuels
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"astrocat"`

	// Secret HMAC des jetons de run. Obligatoire : le serveur refuse de démarrer sans.
	SigningSecret string `env:"SCORE_SIGNING_SECRET"`

	RunTokenTTLMs int64 `env:"RUN_TOKEN_TTL_MS" envDefault:"300000"`
	RateLimit     int   `env:"SCORE_RATE_LIMIT" envDefault:"12"`
	RateWindowMs  int64 `env:"SCORE_RATE_WINDOW_MS" envDefault:"60000"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	if cfg.SigningSecret == "" {
		return nil, fmt.Errorf("SCORE_SIGNING_SECRET is required")
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 12
	}
	if cfg.RateWindowMs <= 0 {
		cfg.RateWindowMs = 60000
	}

	return cfg, nil
}

// RunTokenTTL retourne le TTL configuré, ramené dans (MinRunTokenTTL, MaxRunTokenTTL].
// Une valeur trop courte pour couvrir un run retombe sur le défaut de 5 minutes.
func (c *Config) RunTokenTTL() time.Duration {
	ttl := time.Duration(c.RunTokenTTLMs) * time.Millisecond
	if ttl <= MinRunTokenTTL {
		return 5 * time.Minute
	}
	if ttl > MaxRunTokenTTL {
		return MaxRunTokenTTL
	}
	return ttl
}

// RateWindow retourne la fenêtre de rate limiting configurée.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateWindowMs) * time.Millisecond
}

// DSN construit la chaîne de connexion PostgreSQL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
