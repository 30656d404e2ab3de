// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

// Log output formats accepted by STOREFRONT_LOG_FORMAT.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL       string
	AssetBaseURL string
	ListenAddr   string
	DBPath       string
	SecretKey    string
	HTTPTimeout  time.Duration
	OrderPhone   string
	LogLevel     slog.Level
	LogFormat    string
}

// HasSecretKey reports whether a key is configured for the encrypted
// credential store. Without one the admin session is kept in memory only.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Optional variables with defaults: STOREFRONT_API_URL (https://api.isavralabel.com/api),
// STOREFRONT_ASSET_BASE_URL (https://api.isavralabel.com), STOREFRONT_LISTEN_ADDR
// (127.0.0.1:8080), STOREFRONT_DB_PATH (storefront.db), STOREFRONT_HTTP_TIMEOUT (15s),
// STOREFRONT_ORDER_PHONE (6282122888903), STOREFRONT_LOG_LEVEL (info) and
// STOREFRONT_LOG_FORMAT (text). STOREFRONT_SECRET_KEY has no default.
func Load() (*Config, error) {
	apiURL, err := urlVar("STOREFRONT_API_URL", "https://api.isavralabel.com/api")
	if err != nil {
		return nil, err
	}

	assetBaseURL, err := urlVar("STOREFRONT_ASSET_BASE_URL", "https://api.isavralabel.com")
	if err != nil {
		return nil, err
	}

	timeout := 15 * time.Second
	if v, ok := os.LookupEnv("STOREFRONT_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STOREFRONT_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("STOREFRONT_HTTP_TIMEOUT must be positive, got %q", v)
		}
		timeout = parsed
	}

	phone := stringVar("STOREFRONT_ORDER_PHONE", "6282122888903")
	phone = strings.TrimPrefix(phone, "+")
	if phone == "" || strings.Trim(phone, "0123456789") != "" {
		return nil, fmt.Errorf("STOREFRONT_ORDER_PHONE must contain only digits, got %q", phone)
	}

	level := slog.LevelInfo
	if v, ok := os.LookupEnv("STOREFRONT_LOG_LEVEL"); ok && v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("STOREFRONT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	format := strings.ToLower(stringVar("STOREFRONT_LOG_FORMAT", LogFormatText))
	if format != LogFormatText && format != LogFormatJSON {
		return nil, fmt.Errorf("STOREFRONT_LOG_FORMAT must be %q or %q, got %q", LogFormatText, LogFormatJSON, format)
	}

	return &Config{
		APIURL:       apiURL,
		AssetBaseURL: assetBaseURL,
		ListenAddr:   stringVar("STOREFRONT_LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:       stringVar("STOREFRONT_DB_PATH", "storefront.db"),
		SecretKey:    os.Getenv("STOREFRONT_SECRET_KEY"),
		HTTPTimeout:  timeout,
		OrderPhone:   phone,
		LogLevel:     level,
		LogFormat:    format,
	}, nil
}

// stringVar returns the trimmed value of key, or def when unset or blank.
func stringVar(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// urlVar returns an absolute http(s) URL without a trailing slash.
func urlVar(key, def string) (string, error) {
	v := stringVar(key, def)
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, v)
	}
	return strings.TrimRight(v, "/"), nil
}
