package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures gateway level configuration.
type Server struct {
	Addr              string
	ShopAPIBaseURL    string
	ShopAPITimeout    time.Duration
	SessionSigningKey string
	Redis             RedisConfig
}

// RedisConfig holds connection settings for the optional Redis-backed
// redirect-intent store. An empty URL selects the in-memory store.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("SHOP_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	timeout := 5 * time.Second
	if raw := os.Getenv("SHOP_API_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:              addr,
		ShopAPIBaseURL:    baseURL,
		ShopAPITimeout:    timeout,
		SessionSigningKey: signingKey,
		Redis: RedisConfig{
			URL:          os.Getenv("STOREFRONT_REDIS_URL"),
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}
