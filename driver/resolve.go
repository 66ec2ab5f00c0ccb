// Package driver locates a runnable browser/driver pair on the host and
// turns it into a live automation session, falling back gracefully across
// heterogeneous environments.
package driver

import (
	"os"
	"os/exec"
)

// Environment variables honored by this package.
const (
	// EnvBrowserBinary overrides the browser executable path.
	EnvBrowserBinary = "CHROME_BINARY"

	// EnvDriverBinary overrides the automation-driver executable path.
	EnvDriverBinary = "CHROMEDRIVER_PATH"

	// EnvDriverManager, when set to "1", enables the managed-download
	// launch fallback. It is parsed once at configuration load and reaches
	// the Factory through Options.UseDriverManager.
	EnvDriverManager = "USE_WEBDRIVER_MANAGER"
)

// Well-known executable names, probed in order on PATH.
var (
	browserCandidates = []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
		"chrome",
	}
	// Only binaries that speak the DevTools protocol themselves are
	// probed; a WebDriver server like chromedriver cannot be launched as
	// the browser. An explicit CHROMEDRIVER_PATH is still honored verbatim
	// and simply fails through to the next launch strategy if it points at
	// something unlaunchable.
	driverCandidates = []string{
		"chrome-headless-shell",
		"headless-shell",
		"headless_shell",
	}
)

// ResolveBrowserPath returns the browser executable to use, or "" when none
// was found. "" is not an error: it tells the launch layer to self-resolve.
// An explicit CHROME_BINARY value is returned verbatim, even if it does not
// exist on disk — an override is an instruction, not a hint.
func ResolveBrowserPath() string {
	return resolvePath(EnvBrowserBinary, browserCandidates, os.Getenv, exec.LookPath)
}

// ResolveDriverPath returns the automation-driver executable to use, or ""
// when none was found, with the same override semantics as
// ResolveBrowserPath but keyed on CHROMEDRIVER_PATH.
func ResolveDriverPath() string {
	return resolvePath(EnvDriverBinary, driverCandidates, os.Getenv, exec.LookPath)
}

func resolvePath(envKey string, candidates []string, getenv func(string) string, lookPath func(string) (string, error)) string {
	if v := getenv(envKey); v != "" {
		return v
	}
	for _, name := range candidates {
		if p, err := lookPath(name); err == nil {
			return p
		}
	}
	return ""
}
