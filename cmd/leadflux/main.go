package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/waheed9881/leadflux-backend-sub002/cache"
	"github.com/waheed9881/leadflux-backend-sub002/config"
	"github.com/waheed9881/leadflux-backend-sub002/driver"
	"github.com/waheed9881/leadflux-backend-sub002/models"
	"github.com/waheed9881/leadflux-backend-sub002/ratelimit"
	"github.com/waheed9881/leadflux-backend-sub002/scraper"
	"github.com/waheed9881/leadflux-backend-sub002/template"
)

func main() {
	var (
		siteKey  = flag.String("site", "", "site template key to scrape")
		query    = flag.String("query", "", "search query (for templates that require interaction)")
		outPath  = flag.String("out", "", "write records to this file instead of stdout")
		listOnly = flag.Bool("list", false, "list registered site keys and exit")
		noCache  = flag.Bool("no-cache", false, "skip the result cache for this run")
	)
	flag.Parse()

	cfg := config.Load()
	initLogger(cfg.Log)

	if err := run(cfg, *siteKey, *query, *outPath, *listOnly, *noCache); err != nil {
		slog.Error("leadflux failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, siteKey, query, outPath string, listOnly, noCache bool) error {
	// ── 1. Site templates ───────────────────────────────────────────
	registry, err := template.Merged(cfg.Templates.File)
	if err != nil {
		return fmt.Errorf("loading site templates: %w", err)
	}

	if listOnly {
		for _, key := range registry.Keys() {
			fmt.Println(key)
		}
		return nil
	}

	if siteKey == "" {
		return fmt.Errorf("missing -site (use -list to see available keys)")
	}
	tmpl, ok := registry.Get(siteKey)
	if !ok {
		return fmt.Errorf("unknown site key %q (use -list to see available keys)", siteKey)
	}
	if tmpl.RequiresInteraction && query == "" {
		return fmt.Errorf("site %q requires a -query", siteKey)
	}

	// ── 2. Cache check ──────────────────────────────────────────────
	cc, err := cache.Open(cfg.Cache.Dir, cfg.Cache.MaxEntries)
	if err != nil {
		slog.Warn("result cache unavailable, scraping fresh", "error", err)
		cc = nil
	}
	cacheKey := cache.Key(siteKey, query)
	if cc != nil && !noCache {
		if leads, hit := cc.Get(cacheKey, cfg.Cache.MaxAge); hit {
			slog.Info("serving cached run", "site", siteKey, "leads", len(leads))
			return writeLeads(leads, outPath)
		}
	}

	// ── 3. Display precondition ─────────────────────────────────────
	if err := driver.EnsureDisplay(cfg.Browser.Headless); err != nil {
		return err
	}

	// ── 4. Browser session ──────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := driver.NewFactory().CreateSession(ctx, driver.Options{
		Headless:         cfg.Browser.Headless,
		WindowWidth:      cfg.Browser.WindowWidth,
		WindowHeight:     cfg.Browser.WindowHeight,
		UserAgent:        cfg.Browser.UserAgent,
		NoSandbox:        cfg.Browser.NoSandbox,
		Proxy:            cfg.Browser.Proxy,
		Stealth:          cfg.Browser.Stealth,
		UseDriverManager: cfg.Browser.UseDriverManager,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	// ── 5. Scrape ───────────────────────────────────────────────────
	limiter, err := ratelimit.New(cfg.RateLimit.RequestsPerMinute)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeConfiguration, "invalid rate limit", err)
	}

	sc := scraper.New(session, limiter, cfg.Scraper, cfg.Browser.Proxy)
	leads, err := sc.Run(ctx, tmpl, query)
	if err != nil {
		return err
	}

	if cc != nil {
		if err := cc.Set(cacheKey, leads); err != nil {
			slog.Warn("could not persist run to cache", "error", err)
		}
	}
	return writeLeads(leads, outPath)
}

// writeLeads emits the records as JSON, one object per line, to stdout or a
// file.
func writeLeads(leads []models.Lead, outPath string) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for _, lead := range leads {
		if err := enc.Encode(lead); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	return nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
