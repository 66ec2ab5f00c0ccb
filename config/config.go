package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser   BrowserConfig
	Scraper   ScraperConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Templates TemplatesConfig
	Log       LogConfig
}

// BrowserConfig controls the browser session.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// WindowWidth and WindowHeight set the browser window size.
	WindowWidth  int // default: 1920
	WindowHeight int // default: 1080

	// UserAgent overrides the browser's user agent when non-empty.
	UserAgent string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Proxy is the proxy URL for all requests.
	Proxy string

	// Stealth enables anti-bot-detection evasions on every page.
	Stealth bool // default: false

	// BrowserBin overrides the browser binary path (CHROME_BINARY).
	BrowserBin string

	// DriverBin overrides the automation-driver binary path (CHROMEDRIVER_PATH).
	DriverBin string

	// UseDriverManager enables the managed-download launch fallback
	// (USE_WEBDRIVER_MANAGER=1).
	UseDriverManager bool
}

// ScraperConfig controls scraping behavior.
type ScraperConfig struct {
	// DefaultTimeout is the deadline for one full scrape run.
	DefaultTimeout time.Duration // default: 120s

	// NavigationTimeout is the max time for a single page navigation.
	NavigationTimeout time.Duration // default: 15s

	// PacePerSecond is the sustained per-second politeness pace applied
	// between element reads, on top of the per-minute request ceiling.
	PacePerSecond float64 // default: 4

	// MaxProfiles caps how many profile links are followed per run.
	// Zero means no cap.
	MaxProfiles int
}

// RateLimitConfig controls the per-process request ceiling.
type RateLimitConfig struct {
	// RequestsPerMinute is the max navigations/interactions admitted in any
	// trailing 60-second window.
	RequestsPerMinute int // default: 10
}

// CacheConfig controls the scrape result cache.
type CacheConfig struct {
	// Dir is the directory cached runs are persisted under. Empty means a
	// "leadflux" directory under the user cache directory.
	Dir string

	// MaxEntries is the maximum number of cached runs.
	MaxEntries int // default: 100

	// MaxAge is how long a cached run stays usable. Zero disables the cache.
	MaxAge time.Duration // default: 15m
}

// TemplatesConfig controls site template loading.
type TemplatesConfig struct {
	// File is an optional yaml file whose templates are merged over the
	// builtin table at startup.
	File string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:         envBoolOr("LEADFLUX_HEADLESS", true),
			WindowWidth:      envIntOr("LEADFLUX_WINDOW_WIDTH", 1920),
			WindowHeight:     envIntOr("LEADFLUX_WINDOW_HEIGHT", 1080),
			UserAgent:        os.Getenv("LEADFLUX_USER_AGENT"),
			NoSandbox:        envBoolOr("LEADFLUX_NO_SANDBOX", false),
			Proxy:            os.Getenv("LEADFLUX_PROXY"),
			Stealth:          envBoolOr("LEADFLUX_STEALTH", false),
			BrowserBin:       os.Getenv("CHROME_BINARY"),
			DriverBin:        os.Getenv("CHROMEDRIVER_PATH"),
			UseDriverManager: os.Getenv("USE_WEBDRIVER_MANAGER") == "1",
		},
		Scraper: ScraperConfig{
			DefaultTimeout:    envDurationOr("LEADFLUX_TIMEOUT", 120*time.Second),
			NavigationTimeout: envDurationOr("LEADFLUX_NAV_TIMEOUT", 15*time.Second),
			PacePerSecond:     envFloatOr("LEADFLUX_PACE_PER_SECOND", 4.0),
			MaxProfiles:       envIntOr("LEADFLUX_MAX_PROFILES", 0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: envIntOr("LEADFLUX_RATE_PER_MINUTE", 10),
		},
		Cache: CacheConfig{
			Dir:        os.Getenv("LEADFLUX_CACHE_DIR"),
			MaxEntries: envIntOr("LEADFLUX_CACHE_MAX_ENTRIES", 100),
			MaxAge:     envDurationOr("LEADFLUX_CACHE_MAX_AGE", 15*time.Minute),
		},
		Templates: TemplatesConfig{
			File: os.Getenv("LEADFLUX_TEMPLATES_FILE"),
		},
		Log: LogConfig{
			Level:  envOr("LEADFLUX_LOG_LEVEL", "info"),
			Format: envOr("LEADFLUX_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
