package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GinMode   string
	Port      string
	TZ        string
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	// DBReset drops and recreates the schema on startup and inserts the
	// sample rows. Development convenience only.
	DBReset bool

	AuthDomain     string
	AuthAudience   string
	AuthIssuer     string
	AuthAlgorithms []string
}

func Load() *Config {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		GinMode:   getenv("GIN_MODE", "debug"),
		Port:      getenv("PORT", "8080"),
		TZ:        getenv("TZ", "UTC"),
		DBHost:    getenv("DB_HOST", "localhost"),
		DBPort:    getenv("DB_PORT", "5432"),
		DBUser:    getenv("DB_USER", "postgres"),
		DBPass:    getenv("DB_PASS", ""),
		DBName:    getenv("DB_NAME", "postgres"),
		DBSSLMode: os.Getenv("DB_SSLMODE"),
		DBReset:   getenv("DB_RESET", "false") == "true",

		AuthDomain:     os.Getenv("AUTH0_DOMAIN"),
		AuthAudience:   os.Getenv("AUTH0_API_AUDIENCE"),
		AuthIssuer:     os.Getenv("AUTH0_ISSUER"),
		AuthAlgorithms: splitList(getenv("AUTH0_ALGORITHMS", "RS256")),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// JWKSURL is the identity provider's published signing-key endpoint.
func (c *Config) JWKSURL() string {
	return "https://" + c.AuthDomain + "/.well-known/jwks.json"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
