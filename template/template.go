// Package template holds the declarative per-site scraping templates and the
// read-only registry they are served from. A template describes where to find
// the search box, result cards and extractable fields on one target site; the
// selectors themselves are opaque here and interpreted by the automation
// layer.
package template

import (
	"fmt"
	"os"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

// Template is the declarative description of one target site.
type Template struct {
	// SiteKey is the unique, case-sensitive registry key.
	SiteKey string `yaml:"site_key"`

	// BaseURL is the entry URL: the search page when RequiresInteraction is
	// set, otherwise the listing page itself.
	BaseURL string `yaml:"base_url"`

	SearchSelector      string `yaml:"search_selector,omitempty"`
	SubmitSelector      string `yaml:"submit_selector,omitempty"`
	ResultItemSelector  string `yaml:"result_item_selector"`
	ProfileLinkSelector string `yaml:"profile_link_selector,omitempty"`

	// FieldMap maps output field names to CSS selectors, applied to each
	// result card and, when profiles are followed, to each profile page.
	FieldMap map[string]string `yaml:"field_map"`

	// WaitSeconds is how long to pause after navigation/search for dynamic
	// content to settle.
	WaitSeconds int `yaml:"wait_seconds"`

	// RequiresInteraction marks sites where a search must be typed and
	// submitted before results appear.
	RequiresInteraction bool `yaml:"requires_interaction"`

	// StaticProfiles marks sites whose profile pages render without JS and
	// can be fetched over plain HTTP instead of the browser.
	StaticProfiles bool `yaml:"static_profiles,omitempty"`

	// ProfileNotes asks the scraper to extract the profile page's main
	// content as markdown notes.
	ProfileNotes bool `yaml:"profile_notes,omitempty"`
}

// Validate checks the template for structural problems and compiles every
// selector so a broken template fails at registration, not mid-scrape.
func (t *Template) Validate() error {
	if t.SiteKey == "" {
		return fmt.Errorf("template: site_key is required")
	}
	if t.BaseURL == "" {
		return fmt.Errorf("template %q: base_url is required", t.SiteKey)
	}
	if t.ResultItemSelector == "" {
		return fmt.Errorf("template %q: result_item_selector is required", t.SiteKey)
	}
	if t.WaitSeconds < 0 {
		return fmt.Errorf("template %q: wait_seconds must be non-negative", t.SiteKey)
	}
	if t.RequiresInteraction && (t.SearchSelector == "" || t.SubmitSelector == "") {
		return fmt.Errorf("template %q: requires_interaction needs search_selector and submit_selector", t.SiteKey)
	}
	if len(t.FieldMap) == 0 {
		return fmt.Errorf("template %q: field_map must not be empty", t.SiteKey)
	}

	selectors := map[string]string{
		"search_selector":       t.SearchSelector,
		"submit_selector":       t.SubmitSelector,
		"result_item_selector":  t.ResultItemSelector,
		"profile_link_selector": t.ProfileLinkSelector,
	}
	for name, sel := range selectors {
		if sel == "" {
			continue
		}
		if _, err := cascadia.Parse(sel); err != nil {
			return fmt.Errorf("template %q: invalid %s %q: %w", t.SiteKey, name, sel, err)
		}
	}
	for field, sel := range t.FieldMap {
		if sel == "" {
			return fmt.Errorf("template %q: field %q has an empty selector", t.SiteKey, field)
		}
		if _, err := cascadia.Parse(sel); err != nil {
			return fmt.Errorf("template %q: field %q has invalid selector %q: %w", t.SiteKey, field, sel, err)
		}
	}
	return nil
}

// clone returns a deep copy so registry lookups never alias shared state.
func (t *Template) clone() *Template {
	c := *t
	c.FieldMap = make(map[string]string, len(t.FieldMap))
	for k, v := range t.FieldMap {
		c.FieldMap[k] = v
	}
	return &c
}

// LoadFile reads a yaml list of templates from path.
func LoadFile(path string) ([]*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: read %s: %w", path, err)
	}
	var file struct {
		Templates []*Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("template: parse %s: %w", path, err)
	}
	return file.Templates, nil
}
