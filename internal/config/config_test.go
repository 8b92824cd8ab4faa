package config

import (
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(map[string]string{"TOKEN_KEY": "k"}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":8080" || c.LogLevel != "info" || c.RateLimit != 5 || c.RateBurst != 10 || c.ShutdownTTL != 5*time.Second {
		t.Errorf("config = %+v", c)
	}
	if c.TLS() {
		t.Error("TLS enabled without a certificate")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"TOKEN_KEY":  "k",
		"ADDR":       ":443",
		"TLS_CERT":   "server.crt",
		"TLS_KEY":    "server.key",
		"RATE_LIMIT": "0.5",
		"RATE_BURST": "3",
		"LOG_LEVEL":  "debug",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !c.TLS() || c.Addr != ":443" || c.RateLimit != 0.5 || c.RateBurst != 3 || c.LogLevel != "debug" {
		t.Errorf("config = %+v", c)
	}
}

func TestFromEnvErrors(t *testing.T) {
	bad := []map[string]string{
		{},
		{"TOKEN_KEY": "k", "RATE_LIMIT": "fast"},
		{"TOKEN_KEY": "k", "RATE_BURST": "0"},
		{"TOKEN_KEY": "k", "SHUTDOWN_TIMEOUT": "soon"},
	}
	for _, m := range bad {
		if _, err := FromEnv(env(m)); err == nil {
			t.Errorf("FromEnv(%v) should fail", m)
		}
	}
}
