package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything main needs to wire the service. Values come from
// the environment with development defaults so `go run ./cmd/server` works out
// of the box.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisURL    string

	// RateLimitSecret is mixed into the caller-identity hash so stored keys
	// cannot be reversed or enumerated. Must be overridden in production.
	RateLimitSecret string
	RateLimitMax    int
	RateLimitWindow time.Duration

	JWTSigningKey string

	GeocodeBaseURL string

	RequestTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:            envOr("SHULCHAN_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RateLimitSecret: envOr("RATE_LIMIT_SECRET", "dev-secret-change-in-production"),
		RateLimitMax:    envIntOr("RATE_LIMIT_MAX", 5),
		RateLimitWindow: envDurationOr("RATE_LIMIT_WINDOW", time.Hour),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-signing-key-change-in-production"),
		GeocodeBaseURL:  envOr("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		RequestTimeout:  envDurationOr("REQUEST_TIMEOUT", 15*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
