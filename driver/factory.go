package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/waheed9881/leadflux-backend-sub002/models"
)

// Options configures session creation.
type Options struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
	UserAgent    string
	NoSandbox    bool
	Proxy        string
	Stealth      bool

	// UseDriverManager opts into the managed-download fallback. The
	// USE_WEBDRIVER_MANAGER=1 environment flag feeds this through
	// config.Load; the factory itself never reads the environment.
	UseDriverManager bool
}

// launchFunc starts a browser. bin, when non-empty, pins the executable;
// forceDownload makes the launcher install a known-good browser revision
// first instead of probing the host.
type launchFunc func(ctx context.Context, opts Options, bin string, forceDownload bool) (*Session, error)

type launchStrategy struct {
	name string
	run  func(ctx context.Context) (*Session, error)
}

// Factory creates browser sessions through an ordered list of launch
// strategies: first success wins, and the first failure is kept for the
// final diagnostic. The resolver and launch hooks are swappable for tests.
type Factory struct {
	resolveBrowser func() string
	resolveDriver  func() string
	launch         launchFunc
}

// NewFactory returns a Factory wired to the real resolver and launcher.
func NewFactory() *Factory {
	return &Factory{
		resolveBrowser: ResolveBrowserPath,
		resolveDriver:  ResolveDriverPath,
		launch:         launchBrowser,
	}
}

// CreateSession resolves a browser/driver pair and starts a session, walking
// the fallback chain until one strategy succeeds. When every strategy fails
// it returns a DRIVER_UNAVAILABLE error wrapping the first underlying cause.
func (f *Factory) CreateSession(ctx context.Context, opts Options) (*Session, error) {
	var firstErr error
	for _, st := range f.strategies(opts) {
		sess, err := st.run(ctx)
		if err == nil {
			sess.strategy = st.name
			slog.Info("browser session started", "strategy", st.name)
			return sess, nil
		}
		slog.Warn("launch strategy failed", "strategy", st.name, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = errors.New("no launch strategy was applicable")
	}
	return nil, models.NewScrapeError(
		models.ErrCodeDriverUnavailable,
		"no working browser/driver combination found: install a Chrome or Chromium runtime with its shared libraries, or set CHROME_BINARY / CHROMEDRIVER_PATH to explicit binaries",
		firstErr,
	)
}

// strategies assembles the ordered fallback chain for one creation attempt.
// Resolution is recomputed here on every call; nothing is cached between
// sessions.
func (f *Factory) strategies(opts Options) []launchStrategy {
	var out []launchStrategy

	if p := f.resolveDriver(); p != "" {
		out = append(out, launchStrategy{
			name: "explicit-driver",
			run: func(ctx context.Context) (*Session, error) {
				return f.launch(ctx, opts, p, false)
			},
		})
	}
	if p := f.resolveBrowser(); p != "" {
		out = append(out, launchStrategy{
			name: "resolved-browser",
			run: func(ctx context.Context) (*Session, error) {
				return f.launch(ctx, opts, p, false)
			},
		})
	}

	// The launcher probes its own well-known locations and downloads a
	// cached browser revision when it finds nothing.
	out = append(out, launchStrategy{
		name: "auto-resolve",
		run: func(ctx context.Context) (*Session, error) {
			return f.launch(ctx, opts, "", false)
		},
	})

	if opts.UseDriverManager {
		out = append(out, launchStrategy{
			name: "managed-download",
			run: func(ctx context.Context) (*Session, error) {
				return f.launch(ctx, opts, "", true)
			},
		})
	}
	return out
}

// launchBrowser is the real launchFunc: it spawns the browser process via
// the rod launcher and connects to it. On any failure the half-started
// process and its temp profile are torn down before returning.
func launchBrowser(ctx context.Context, opts Options, bin string, forceDownload bool) (*Session, error) {
	if forceDownload {
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return nil, fmt.Errorf("managed browser download failed: %w", err)
		}
		bin = path
	}

	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox)

	if bin != "" {
		l = l.Bin(bin)
	}
	if opts.Proxy != "" {
		l = l.Proxy(opts.Proxy)
	}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		l.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", opts.WindowWidth, opts.WindowHeight))
	}

	// Keep the browser quiet and steady under automation.
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("browser connect failed: %w", err)
	}
	slog.Debug("browser launched", "controlURL", controlURL, "bin", bin)

	return &Session{
		Browser:   browser,
		launcher:  l,
		stealth:   opts.Stealth,
		userAgent: opts.UserAgent,
	}, nil
}
