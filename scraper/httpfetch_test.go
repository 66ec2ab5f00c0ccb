package scraper

import (
	"strings"
	"testing"
)

func TestNeedsBrowser_SPAShell(t *testing.T) {
	body := []byte(`<html><head><script src="app.js"></script></head><body><div id="root"></div></body></html>`)
	if !needsBrowser(body) {
		t.Error("empty SPA shell should need the browser")
	}
}

func TestNeedsBrowser_NoscriptWarning(t *testing.T) {
	filler := strings.Repeat("Plenty of server rendered text here. ", 20)
	body := []byte(`<html><body><noscript>Please enable JavaScript to view this page</noscript><p>` + filler + `</p></body></html>`)
	if !needsBrowser(body) {
		t.Error("a noscript JS warning should need the browser")
	}
}

func TestNeedsBrowser_ServerRenderedContent(t *testing.T) {
	filler := strings.Repeat("Dr. Maria Santos practices cardiology in Springfield. ", 10)
	body := []byte(`<html><body><article><h1>Profile</h1><p>` + filler + `</p></article></body></html>`)
	if needsBrowser(body) {
		t.Error("server-rendered content should not need the browser")
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	body := []byte(`<html><body><script>var hidden = 1;</script><style>.x{}</style><p>visible words</p></body></html>`)
	text := visibleText(body)
	if !strings.Contains(text, "visible words") {
		t.Errorf("visible text missing, got %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Errorf("script content leaked into visible text: %q", text)
	}
}
