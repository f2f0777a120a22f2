package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance API
	APIKey        string
	APISecret     string
	BaseURL       string // explicit override; wins over the profile lookup
	Profile       string // endpoint profile name, e.g. "testnet"
	EndpointsPath string // optional YAML overriding the built-in profiles

	// Transport
	HTTPTimeout time.Duration

	// Telemetry
	LogLevel string
	LogFile  string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:        envStr("BINANCE_API_KEY", ""),
		APISecret:     envStr("BINANCE_API_SECRET", ""),
		BaseURL:       envStr("BINANCE_BASE_URL", ""),
		Profile:       envStr("BINANCE_PROFILE", "testnet"),
		EndpointsPath: envStr("BINANCE_ENDPOINTS_PATH", ""),

		HTTPTimeout: time.Duration(envInt("HTTP_TIMEOUT_SEC", 10)) * time.Second,

		// The file log keeps everything down to debug; the console only
		// surfaces warnings and errors.
		LogLevel: envStr("LOG_LEVEL", "debug"),
		LogFile:  envStr("LOG_FILE", "logs/futures-bot.log"),
	}
}

// HasCredentials reports whether both halves of the API key pair are set.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// ResolveBaseURL returns the explicit BINANCE_BASE_URL override when set,
// otherwise the URL of the configured endpoint profile.
func (c *Config) ResolveBaseURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}

	eps, err := LoadEndpoints(c.EndpointsPath)
	if err != nil {
		return "", err
	}
	return eps.BaseURL(c.Profile)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
