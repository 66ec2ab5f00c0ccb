package driver

import (
	"errors"
	"testing"
)

func TestResolvePath_EnvOverrideReturnedVerbatim(t *testing.T) {
	// The override wins even when the file does not exist and PATH has a
	// perfectly good candidate.
	getenv := func(key string) string {
		if key == EnvBrowserBinary {
			return "/nonexistent/chrome"
		}
		return ""
	}
	lookPath := func(string) (string, error) { return "/usr/bin/google-chrome", nil }

	got := resolvePath(EnvBrowserBinary, browserCandidates, getenv, lookPath)
	if got != "/nonexistent/chrome" {
		t.Errorf("resolvePath = %q, want the override verbatim", got)
	}
}

func TestResolvePath_FirstPATHCandidateWins(t *testing.T) {
	getenv := func(string) string { return "" }
	lookPath := func(name string) (string, error) {
		switch name {
		case "chromium":
			return "/usr/bin/chromium", nil
		case "chrome":
			return "/usr/local/bin/chrome", nil
		}
		return "", errors.New("not found")
	}

	got := resolvePath(EnvBrowserBinary, browserCandidates, getenv, lookPath)
	// "chromium" precedes "chrome" in the candidate list.
	if got != "/usr/bin/chromium" {
		t.Errorf("resolvePath = %q, want /usr/bin/chromium", got)
	}
}

func TestResolvePath_DriverLookupSkipsWebDriverServers(t *testing.T) {
	// The PATH candidate list must only contain binaries that can be
	// launched as the browser itself. A chromedriver on PATH is a WebDriver
	// server and would never produce a usable DevTools endpoint.
	getenv := func(string) string { return "" }
	var probed []string
	lookPath := func(name string) (string, error) {
		probed = append(probed, name)
		if name == "chromedriver" {
			return "/usr/bin/chromedriver", nil
		}
		if name == "headless-shell" {
			return "/usr/bin/headless-shell", nil
		}
		return "", errors.New("not found")
	}

	got := resolvePath(EnvDriverBinary, driverCandidates, getenv, lookPath)
	if got != "/usr/bin/headless-shell" {
		t.Errorf("resolvePath = %q, want /usr/bin/headless-shell", got)
	}
	for _, name := range probed {
		if name == "chromedriver" {
			t.Error("chromedriver must not be probed as a launchable binary")
		}
	}
}

func TestResolvePath_AbsentIsEmptyNotError(t *testing.T) {
	getenv := func(string) string { return "" }
	lookPath := func(string) (string, error) { return "", errors.New("not found") }

	if got := resolvePath(EnvDriverBinary, driverCandidates, getenv, lookPath); got != "" {
		t.Errorf("resolvePath = %q, want empty for nothing-found", got)
	}
}

func TestResolveBrowserPath_ReadsEnvironment(t *testing.T) {
	t.Setenv(EnvBrowserBinary, "/opt/custom/chrome")
	if got := ResolveBrowserPath(); got != "/opt/custom/chrome" {
		t.Errorf("ResolveBrowserPath = %q, want CHROME_BINARY value", got)
	}
}

func TestResolveDriverPath_ReadsEnvironment(t *testing.T) {
	t.Setenv(EnvDriverBinary, "/opt/custom/chromedriver")
	if got := ResolveDriverPath(); got != "/opt/custom/chromedriver" {
		t.Errorf("ResolveDriverPath = %q, want CHROMEDRIVER_PATH value", got)
	}
}
