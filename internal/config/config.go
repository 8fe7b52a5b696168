package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string
}

// FromEnv reads configuration from the environment, loading a local .env
// file first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", "0.0.0.0:5000"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		BlobBasePath:  envOr("BLOB_BASE_PATH", "./data"),
		SessionSecret: envOr("SESSION_HMAC_SECRET", "classpoll-dev-secret"),
		SessionTTL:    ttl,
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
