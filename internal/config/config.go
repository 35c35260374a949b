// Package config loads and validates server configuration from the
// environment, with an optional .env file and an optional YAML overlay
// for cache policy tuning.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport selects how the MCP server talks to its client.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all server configuration. It is built once at startup and
// never mutated afterwards.
type Config struct {
	// Upstream Taiga API.
	APIURL    string
	Username  string
	Password  string
	AuthToken string // pre-issued token, bypasses password auth

	// HTTP behaviour.
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration // base backoff for transient retries
	RetryBackoffCap time.Duration
	MaxConnsPerHost int
	IdleConnTimeout time.Duration

	// Cache.
	CacheEnabled bool
	CacheTTL     time.Duration
	CacheMaxSize int
	// TTLOverrides maps an endpoint-policy family name to a TTL,
	// loaded from the optional YAML overlay.
	TTLOverrides map[string]time.Duration

	// Rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// MCP transport.
	Transport string // "stdio" or "http"
	Host      string
	Port      int

	// Logging / environment.
	Debug      bool
	Production bool // masks error detail outward
	LogLevel   slog.Level
}

// fileConfig is the shape of the optional YAML overlay file.
type fileConfig struct {
	Cache struct {
		TTLOverrides map[string]int `yaml:"ttl_overrides"` // family -> seconds
	} `yaml:"cache"`
}

// Load builds a Config from the environment. A .env file in the working
// directory is read first if present; real environment variables win.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{
		APIURL:          strings.TrimRight(os.Getenv("TAIGA_API_URL"), "/"),
		Username:        os.Getenv("TAIGA_USERNAME"),
		Password:        os.Getenv("TAIGA_PASSWORD"),
		AuthToken:       os.Getenv("TAIGA_AUTH_TOKEN"),
		Timeout:         envSeconds("TAIGA_TIMEOUT", 30*time.Second),
		MaxRetries:      envInt("TAIGA_MAX_RETRIES", 3),
		RetryBackoff:    envSeconds("TAIGA_RETRY_BACKOFF", 500*time.Millisecond),
		RetryBackoffCap: envSeconds("TAIGA_RETRY_BACKOFF_CAP", 10*time.Second),
		MaxConnsPerHost: envInt("TAIGA_MAX_CONNS", 10),
		IdleConnTimeout: envSeconds("TAIGA_IDLE_TIMEOUT", 90*time.Second),
		CacheEnabled:    envBool("TAIGA_CACHE_ENABLED", true),
		CacheTTL:        envSeconds("TAIGA_CACHE_TTL", 5*time.Minute),
		CacheMaxSize:    envInt("TAIGA_CACHE_MAX_SIZE", 1000),
		RateLimitRPS:    envFloat("TAIGA_RATE_LIMIT_RPS", 10),
		Transport:       envOr("MCP_TRANSPORT", TransportStdio),
		Host:            envOr("MCP_HOST", "127.0.0.1"),
		Port:            envInt("MCP_PORT", 8000),
		Debug:           envBool("MCP_DEBUG", false),
		Production:      os.Getenv("TAIGA_ENV") == "production",
	}
	cfg.RateLimitBurst = envInt("TAIGA_RATE_LIMIT_BURST", int(math.Ceil(cfg.RateLimitRPS)))

	cfg.LogLevel = slog.LevelInfo
	if cfg.Debug {
		cfg.LogLevel = slog.LevelDebug
	}

	if path := os.Getenv("TAIGA_MCP_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile merges the YAML overlay at path into the config.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if len(fc.Cache.TTLOverrides) > 0 {
		c.TTLOverrides = make(map[string]time.Duration, len(fc.Cache.TTLOverrides))
		for family, secs := range fc.Cache.TTLOverrides {
			c.TTLOverrides[family] = time.Duration(secs) * time.Second
		}
	}
	return nil
}

// Validate checks the config for startup-fatal problems.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("TAIGA_API_URL is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TAIGA_API_URL %q is not a valid URL", c.APIURL)
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("MCP_TRANSPORT must be %q or %q, got %q",
			TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("MCP_PORT %d out of range", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("TAIGA_TIMEOUT must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("TAIGA_MAX_RETRIES must not be negative")
	}
	if c.CacheMaxSize <= 0 {
		return fmt.Errorf("TAIGA_CACHE_MAX_SIZE must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("TAIGA_RATE_LIMIT_RPS must be positive")
	}
	return nil
}

// HasCredentials reports whether the config can authenticate on its own,
// either with a static token or a username/password pair.
func (c *Config) HasCredentials() bool {
	return c.AuthToken != "" || (c.Username != "" && c.Password != "")
}

// Secrets returns the configured secret values, for log redaction.
func (c *Config) Secrets() []string {
	var s []string
	if c.Password != "" {
		s = append(s, c.Password)
	}
	if c.AuthToken != "" {
		s = append(s, c.AuthToken)
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
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

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// envSeconds parses an env var as a number of seconds. Sub-second defaults
// survive only when the variable is unset.
func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}
