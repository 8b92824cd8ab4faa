package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	TokenKey    string
	TLSCert     string
	TLSKey      string
	LogLevel    string
	RateLimit   float64
	RateBurst   int
	ShutdownTTL time.Duration
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load reads the environment, after merging a .env file when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}
	c := Config{
		Addr:        get("ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL"),
		TokenKey:    getenv("TOKEN_KEY"),
		TLSCert:     getenv("TLS_CERT"),
		TLSKey:      getenv("TLS_KEY"),
		LogLevel:    get("LOG_LEVEL", "info"),
	}
	if c.TokenKey == "" {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}

	var err error
	if c.RateLimit, err = strconv.ParseFloat(get("RATE_LIMIT", "5"), 64); err != nil || c.RateLimit < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT: invalid value %q", getenv("RATE_LIMIT"))
	}
	if c.RateBurst, err = strconv.Atoi(get("RATE_BURST", "10")); err != nil || c.RateBurst < 1 {
		return Config{}, fmt.Errorf("RATE_BURST: invalid value %q", getenv("RATE_BURST"))
	}
	if c.ShutdownTTL, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		slog.Warn("TLS needs both TLS_CERT and TLS_KEY; serving plain HTTP")
	}
	return c, nil
}
