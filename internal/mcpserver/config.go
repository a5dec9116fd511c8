package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasmodels/typename"
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

	// Result limits.
	ListLimit       int
	ListDetailLimit int
	MaxLimit        int
	MaxInlineSize   int64

	// Naming defaults for read_models and find_model.
	GenericNaming  string
	Casing         string
	ParallelNaming bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASMODELS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASMODELS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASMODELS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASMODELS_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASMODELS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASMODELS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("OASMODELS_LIST_LIMIT", 100),
		ListDetailLimit:    envInt("OASMODELS_LIST_DETAIL_LIMIT", 25),
		MaxLimit:           envInt("OASMODELS_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASMODELS_MAX_INLINE_SIZE", 10*1024*1024)),
		GenericNaming:      envGenericNaming("OASMODELS_GENERIC_NAMING"),
		Casing:             envCasing("OASMODELS_CASING"),
		ParallelNaming:     envBool("OASMODELS_PARALLEL_NAMING", false),
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

func envGenericNaming(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, err := typename.ParseGenericNamingStrategy(v); err != nil {
		slog.Warn("invalid generic naming env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return ""
	}
	return v
}

func envCasing(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, err := typename.ParseCasing(v); err != nil {
		slog.Warn("invalid casing env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return ""
	}
	return v
}
