package config

import (
	"os"
	"strconv"
	"time"
)

// defaultSessionKeyPrefix matches session.DefaultKeyPrefix; duplicated here
// so config stays a leaf package with no domain imports.
const defaultSessionKeyPrefix = "singleton-server:"

// Config captures everything the server reads from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Session     SessionConfig
}

// RedisConfig tunes the shared session-store client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SessionConfig controls session lifetime and namespacing. CookieDomain left
// empty scopes the cookie to the request host.
type SessionConfig struct {
	TTL          time.Duration
	KeyPrefix    string
	CookieDomain string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:        getenv("ADDR", ":3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          getenv("REDIS_URL", "redis://localhost:6379"),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Session: SessionConfig{
			TTL:          getenvDuration("SESSION_TTL", 24*time.Hour),
			KeyPrefix:    getenv("SESSION_KEY_PREFIX", defaultSessionKeyPrefix),
			CookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
