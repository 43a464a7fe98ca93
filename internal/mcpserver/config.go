package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/calculisto/json-validator/validator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Validator settings.
	MaxDepth       int
	MetaValidation bool

	// Schemas preloaded into every validator.
	SchemaDir string
	BaseURI   string

	// Output limits.
	ErrorLimit int
	MaxLimit   int

	// Input limits.
	MaxInlineSize int64

	LogLevel slog.Level
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from JSONVALIDATOR_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("JSONVALIDATOR_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("JSONVALIDATOR_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("JSONVALIDATOR_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("JSONVALIDATOR_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("JSONVALIDATOR_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxDepth:           envInt("JSONVALIDATOR_MAX_DEPTH", validator.DefaultMaxDepth),
		MetaValidation:     envBool("JSONVALIDATOR_META_VALIDATION", false),
		SchemaDir:          os.Getenv("JSONVALIDATOR_SCHEMA_DIR"),
		BaseURI:            os.Getenv("JSONVALIDATOR_BASE_URI"),
		ErrorLimit:         envInt("JSONVALIDATOR_MAX_ERRORS", 100),
		MaxLimit:           envInt("JSONVALIDATOR_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("JSONVALIDATOR_MAX_INLINE_SIZE", 10*1024*1024)),
		LogLevel:           envLevel("JSONVALIDATOR_LOG_LEVEL", slog.LevelWarn),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

// envLevel accepts the slog level names (debug, info, warn, error) with an
// optional offset such as "info+2".
func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}

// newLogger returns the logger handed to every validator. MCP owns stdout,
// so records go to stderr.
func newLogger() validator.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	return validator.NewSlogAdapter(slog.New(handler))
}
