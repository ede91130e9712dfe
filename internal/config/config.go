// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Yahoo OAuth application credentials.
	YahooClientID     string
	YahooClientSecret string
	// TokenPath is where the OAuth token cache lives on disk.
	TokenPath string

	ListenAddr string
	MCPPath    string
	APIKey     string
	AuthHeader string

	LogLevel  string
	LogFormat string

	// BenchLimit caps how many bench players the lineup tool displays.
	BenchLimit int
	// Season used for projection lookups.
	Season int
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicit env vars always win because godotenv does not override.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		YahooClientID:     os.Getenv("YAHOO_CLIENT_ID"),
		YahooClientSecret: os.Getenv("YAHOO_CLIENT_SECRET"),
		TokenPath:         envOr("YAHOO_TOKEN_PATH", ".yahoo_token.json"),
		ListenAddr:        envOr("LISTEN_ADDR", ":8080"),
		MCPPath:           envOr("MCP_PATH", "/mcp"),
		APIKey:            strings.TrimSpace(os.Getenv("FF_MCP_API_KEY")),
		AuthHeader:        envOr("FF_MCP_AUTH_HEADER", "X-API-Key"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		LogFormat:         envOr("LOG_FORMAT", "console"),
		BenchLimit:        envIntOr("BENCH_LIMIT", 5),
		Season:            envIntOr("SEASON", 0),
	}

	if cfg.YahooClientID == "" || cfg.YahooClientSecret == "" {
		return nil, fmt.Errorf("YAHOO_CLIENT_ID and YAHOO_CLIENT_SECRET are required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
