package driver

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Session is a live browser-automation session. It owns the browser process
// and its launcher state; exactly one logical scrape drives it at a time and
// the owner must call Close on every exit path.
type Session struct {
	Browser *rod.Browser

	launcher  *launcher.Launcher
	strategy  string
	stealth   bool
	userAgent string
}

// Strategy names the launch strategy that produced this session.
func (s *Session) Strategy() string {
	return s.strategy
}

// Page opens a fresh tab, with stealth evasions and the user-agent override
// applied before any navigation so they take effect for every request.
func (s *Session) Page() (*rod.Page, error) {
	var page *rod.Page
	var err error
	if s.stealth {
		page, err = stealth.Page(s.Browser)
	} else {
		page, err = s.Browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		if uaErr := (proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}).Call(page); uaErr != nil {
			slog.Warn("failed to override user agent, proceeding with the browser default",
				"error", uaErr,
			)
		}
	}
	return page, nil
}

// Close kills the browser process and removes its temp profile directory.
// Safe to call exactly once; always call it, including on error paths.
func (s *Session) Close() {
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			slog.Warn("browser close failed, killing the process instead", "error", err)
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	slog.Debug("browser session closed", "strategy", s.strategy)
}
