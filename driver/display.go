package driver

import (
	"os"
	"runtime"

	"github.com/waheed9881/leadflux-backend-sub002/models"
)

// EnsureDisplay validates that the requested browser mode can render.
// Headless mode needs no display and always passes, as do non-Linux hosts.
// On Linux, non-headless mode requires a display server; its absence is a
// configuration error, not something this function can fix. The check is
// read-only and safe from any goroutine.
func EnsureDisplay(headless bool) error {
	return ensureDisplay(headless, runtime.GOOS, os.LookupEnv)
}

func ensureDisplay(headless bool, goos string, lookupEnv func(string) (string, bool)) error {
	if headless {
		return nil
	}
	if goos != "linux" {
		return nil
	}
	if _, ok := lookupEnv("DISPLAY"); ok {
		return nil
	}
	if _, ok := lookupEnv("WAYLAND_DISPLAY"); ok {
		return nil
	}
	return models.NewScrapeError(
		models.ErrCodeConfiguration,
		"non-headless mode requires a display server: run headless (LEADFLUX_HEADLESS=true) or provision a virtual display (e.g. Xvfb) and export DISPLAY",
		nil,
	)
}
