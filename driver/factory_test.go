package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/waheed9881/leadflux-backend-sub002/models"
)

// fakeLaunch records the strategy sequence the factory walked through and
// fails until the configured number of attempts has been made.
type fakeLaunch struct {
	calls    []string // "bin=<path>" or "download" per attempt
	failures []error  // errors returned in order; nil means success
}

func (f *fakeLaunch) fn(_ context.Context, _ Options, bin string, forceDownload bool) (*Session, error) {
	if forceDownload {
		f.calls = append(f.calls, "download")
	} else {
		f.calls = append(f.calls, "bin="+bin)
	}
	i := len(f.calls) - 1
	if i < len(f.failures) && f.failures[i] != nil {
		return nil, f.failures[i]
	}
	return &Session{}, nil
}

func newTestFactory(browser, drv string, launch launchFunc) *Factory {
	return &Factory{
		resolveBrowser: func() string { return browser },
		resolveDriver:  func() string { return drv },
		launch:         launch,
	}
}

func TestCreateSession_ExplicitDriverTriedFirst(t *testing.T) {
	fl := &fakeLaunch{}
	f := newTestFactory("/usr/bin/chromium", "/usr/bin/chromedriver", fl.fn)

	sess, err := f.CreateSession(context.Background(), Options{Headless: true})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.Strategy() != "explicit-driver" {
		t.Errorf("strategy = %q, want explicit-driver", sess.Strategy())
	}
	if len(fl.calls) != 1 || fl.calls[0] != "bin=/usr/bin/chromedriver" {
		t.Errorf("calls = %v, want a single explicit-driver launch", fl.calls)
	}
}

func TestCreateSession_FallsBackInOrder(t *testing.T) {
	fl := &fakeLaunch{failures: []error{
		errors.New("driver broken"),
		errors.New("browser broken"),
	}}
	f := newTestFactory("/usr/bin/chromium", "/usr/bin/chromedriver", fl.fn)

	sess, err := f.CreateSession(context.Background(), Options{Headless: true})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.Strategy() != "auto-resolve" {
		t.Errorf("strategy = %q, want auto-resolve", sess.Strategy())
	}
	want := []string{"bin=/usr/bin/chromedriver", "bin=/usr/bin/chromium", "bin="}
	if len(fl.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", fl.calls, want)
	}
	for i := range want {
		if fl.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, fl.calls[i], want[i])
		}
	}
}

func TestCreateSession_NoResolutionSkipsExplicitStrategies(t *testing.T) {
	fl := &fakeLaunch{}
	f := newTestFactory("", "", fl.fn)

	sess, err := f.CreateSession(context.Background(), Options{Headless: true})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.Strategy() != "auto-resolve" {
		t.Errorf("strategy = %q, want auto-resolve", sess.Strategy())
	}
	if len(fl.calls) != 1 {
		t.Errorf("calls = %v, want only the auto-resolve launch", fl.calls)
	}
}

func TestCreateSession_ManagedDownloadIsOptIn(t *testing.T) {
	failAll := []error{errors.New("a"), errors.New("b")}

	fl := &fakeLaunch{failures: failAll}
	f := newTestFactory("", "", fl.fn)
	if _, err := f.CreateSession(context.Background(), Options{}); err == nil {
		t.Fatal("expected failure without the managed-download fallback")
	}
	for _, c := range fl.calls {
		if c == "download" {
			t.Fatal("managed download ran without opt-in")
		}
	}

	fl = &fakeLaunch{failures: []error{errors.New("a")}}
	f = newTestFactory("", "", fl.fn)
	sess, err := f.CreateSession(context.Background(), Options{UseDriverManager: true})
	if err != nil {
		t.Fatalf("CreateSession with manager: %v", err)
	}
	if sess.Strategy() != "managed-download" {
		t.Errorf("strategy = %q, want managed-download", sess.Strategy())
	}
	if fl.calls[len(fl.calls)-1] != "download" {
		t.Errorf("calls = %v, want download last", fl.calls)
	}
}

func TestCreateSession_ManagerComesOnlyFromOptions(t *testing.T) {
	// The environment flag is parsed by config.Load, not by the factory, so
	// a set flag without the Options field must change nothing here.
	t.Setenv(EnvDriverManager, "1")
	fl := &fakeLaunch{failures: []error{errors.New("a")}}
	f := newTestFactory("", "", fl.fn)

	if _, err := f.CreateSession(context.Background(), Options{}); err == nil {
		t.Fatal("expected failure, managed download must not trigger from the environment")
	}
	for _, c := range fl.calls {
		if c == "download" {
			t.Fatal("factory consulted the environment for the manager flag")
		}
	}
}

func TestCreateSession_ExhaustionWrapsFirstError(t *testing.T) {
	first := errors.New("driver exploded")
	fl := &fakeLaunch{failures: []error{
		first,
		errors.New("browser exploded"),
		errors.New("auto exploded"),
	}}
	f := newTestFactory("/usr/bin/chromium", "/usr/bin/chromedriver", fl.fn)

	_, err := f.CreateSession(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !models.IsDriverUnavailable(err) {
		t.Errorf("error should carry %s, got %v", models.ErrCodeDriverUnavailable, err)
	}
	if !errors.Is(err, first) {
		t.Errorf("exhaustion error should wrap the FIRST underlying cause, got %v", err)
	}
}
