package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractFields applies a template's field map to an HTML fragment (a result
// card or a full profile page). Fields whose selector matches nothing come
// back empty; extraction of each field is independent of the others.
func extractFields(htmlStr string, fieldMap map[string]string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fieldMap))
	for field, sel := range fieldMap {
		out[field] = normalizeSpace(doc.Find(sel).First().Text())
	}
	return out, nil
}

// extractHref pulls the first matching link from an HTML fragment and
// resolves it against base. Returns "" when the selector matches nothing or
// the href is unusable.
func extractHref(htmlStr, selector, base string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	href, ok := doc.Find(selector).First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// normalizeSpace collapses runs of whitespace to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
