package models

import "time"

// Lead is one structured record extracted from a target site.
type Lead struct {
	// SiteKey identifies the site template that produced this record.
	SiteKey string `json:"site_key"`

	// SourceURL is the page the field values were read from. When a profile
	// page was followed this is the profile URL, otherwise the listing URL.
	SourceURL string `json:"source_url"`

	// Fields maps the template's output field names to extracted text.
	Fields map[string]string `json:"fields"`

	// Notes holds the markdown rendering of the profile page's main content,
	// if the template asked for it.
	Notes string `json:"notes,omitempty"`

	ScrapedAt time.Time `json:"scraped_at"`
}
