package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"
)

// minNotesLength guards against readability latching onto boilerplate: below
// this many characters of text we treat the extraction as failed.
const minNotesLength = 50

// mdConverter is goroutine-safe and built once. The base plugin strips
// script/style/head noise, commonmark renders standard markdown.
var mdConverter = sync.OnceValue(func() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
})

// profileNotes runs readability over a profile page and renders the main
// content as markdown. The domain of sourceURL anchors relative links.
func profileNotes(rawHTML, sourceURL string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", fmt.Errorf("notes: invalid source url %q: %w", sourceURL, err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return "", fmt.Errorf("notes: readability failed: %w", err)
	}
	if len(strings.TrimSpace(article.TextContent)) < minNotesLength {
		return "", fmt.Errorf("notes: extracted content too short (%d chars)", len(article.TextContent))
	}

	md, err := mdConverter().ConvertString(article.Content, converter.WithDomain(u.Host))
	if err != nil {
		return "", fmt.Errorf("notes: markdown conversion failed: %w", err)
	}
	return strings.TrimSpace(md), nil
}
