// Package scraper executes one template-driven scrape against one live
// browser session: navigate, optionally search, enumerate result cards,
// extract fields, follow profile links. Every outbound navigation or
// interaction is gated by the sliding-window rate limiter.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/waheed9881/leadflux-backend-sub002/config"
	"github.com/waheed9881/leadflux-backend-sub002/driver"
	"github.com/waheed9881/leadflux-backend-sub002/models"
	"github.com/waheed9881/leadflux-backend-sub002/ratelimit"
	"github.com/waheed9881/leadflux-backend-sub002/template"
	"github.com/ysmood/gson"
	"golang.org/x/time/rate"
)

// Scraper drives a single browser session. It is not safe for concurrent
// Run calls; one logical scrape owns the session at a time.
type Scraper struct {
	session *driver.Session
	limiter *ratelimit.Limiter
	pace    *rate.Limiter
	cfg     config.ScraperConfig
	fetcher *httpFetcher
}

// New creates a Scraper bound to session. The limiter gates navigations and
// interactions; a token-bucket pace additionally smooths element reads so
// card enumeration does not hammer the page.
func New(session *driver.Session, limiter *ratelimit.Limiter, cfg config.ScraperConfig, proxy string) *Scraper {
	pps := cfg.PacePerSecond
	if pps <= 0 {
		pps = 4
	}
	return &Scraper{
		session: session,
		limiter: limiter,
		pace:    rate.NewLimiter(rate.Limit(pps), 1),
		cfg:     cfg,
		fetcher: newHTTPFetcher(proxy),
	}
}

// Run performs one full scrape of tmpl with the given search query and
// returns the extracted records. The page opened for the run is closed on
// every exit path.
func (s *Scraper) Run(ctx context.Context, tmpl *template.Template, query string) ([]models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DefaultTimeout)
	defer cancel()

	logger := slog.With("site", tmpl.SiteKey, "query", query)

	page, err := s.session.Page()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeNavigation, "failed to open a page", err)
	}
	defer func() { _ = page.Close() }()

	p := page.Context(ctx)

	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	logger.Info("navigating", "url", tmpl.BaseURL)
	if err := p.Timeout(s.cfg.NavigationTimeout).Navigate(tmpl.BaseURL); err != nil {
		return nil, categorize(err, fmt.Sprintf("navigation to %s failed", tmpl.BaseURL))
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		logger.Debug("DOM did not stabilize, proceeding", "error", err)
	}

	if tmpl.RequiresInteraction {
		if err := s.gate(ctx); err != nil {
			return nil, err
		}
		if err := submitSearch(p, tmpl, query); err != nil {
			return nil, models.NewScrapeError(models.ErrCodeInteraction, "search interaction failed", err)
		}
	}

	if tmpl.WaitSeconds > 0 {
		if err := sleepCtx(ctx, time.Duration(tmpl.WaitSeconds)*time.Second); err != nil {
			return nil, categorize(err, "wait for dynamic content aborted")
		}
	}

	logger.Debug("result cards rendered", "count", resultCount(p, tmpl.ResultItemSelector))

	cards, err := p.Elements(tmpl.ResultItemSelector)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			fmt.Sprintf("result cards %q not found", tmpl.ResultItemSelector),
			err,
		)
	}

	// Snapshot card HTML up front: following a profile link navigates the
	// page away and invalidates the card nodes.
	fragments := make([]string, 0, len(cards))
	for _, card := range cards {
		if err := s.pace.Wait(ctx); err != nil {
			return nil, categorize(err, "pacing wait aborted")
		}
		fragment, err := card.HTML()
		if err != nil {
			logger.Warn("skipping unreadable result card", "error", err)
			continue
		}
		fragments = append(fragments, fragment)
	}

	leads := make([]models.Lead, 0, len(fragments))
	profilesFollowed := 0
	for _, fragment := range fragments {
		fields, err := extractFields(fragment, tmpl.FieldMap)
		if err != nil {
			logger.Warn("skipping unparsable result card", "error", err)
			continue
		}
		lead := models.Lead{
			SiteKey:   tmpl.SiteKey,
			SourceURL: tmpl.BaseURL,
			Fields:    fields,
			ScrapedAt: time.Now().UTC(),
		}

		if tmpl.ProfileLinkSelector != "" && (s.cfg.MaxProfiles == 0 || profilesFollowed < s.cfg.MaxProfiles) {
			if href := extractHref(fragment, tmpl.ProfileLinkSelector, tmpl.BaseURL); href != "" {
				profilesFollowed++
				if err := s.enrichFromProfile(ctx, p, tmpl, &lead, href); err != nil {
					return nil, err
				}
			}
		}
		leads = append(leads, lead)
	}

	logger.Info("scrape complete", "leads", len(leads), "profiles", profilesFollowed)
	return leads, nil
}

// gate blocks until the rate limiter admits the next outbound action.
func (s *Scraper) gate(ctx context.Context) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		return categorize(err, "rate-limited wait aborted")
	}
	return nil
}

// enrichFromProfile re-extracts the field map from a card's profile page,
// profile values winning over card values. Profile failures are soft: the
// lead keeps its card fields and the run continues. Only a dead context
// aborts the whole run.
func (s *Scraper) enrichFromProfile(ctx context.Context, p *rod.Page, tmpl *template.Template, lead *models.Lead, profileURL string) error {
	logger := slog.With("site", tmpl.SiteKey, "profile", profileURL)

	var pageHTML string
	if tmpl.StaticProfiles {
		if err := s.gate(ctx); err != nil {
			return err
		}
		body, err := s.fetcher.fetch(ctx, profileURL)
		switch {
		case err != nil:
			logger.Debug("static profile fetch failed, using the browser", "error", err)
		case needsBrowser(body):
			logger.Debug("static profile looks JS-dependent, using the browser")
		default:
			pageHTML = string(body)
		}
	}

	if pageHTML == "" {
		if err := ctxAbort(ctx); err != nil {
			return err
		}
		if err := s.gate(ctx); err != nil {
			return err
		}
		if err := p.Timeout(s.cfg.NavigationTimeout).Navigate(profileURL); err != nil {
			logger.Warn("profile navigation failed, keeping card fields", "error", err)
			return ctxAbort(ctx)
		}
		if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
			logger.Debug("profile DOM did not stabilize, proceeding", "error", err)
		}
		html, err := p.HTML()
		if err != nil {
			logger.Warn("profile HTML read failed, keeping card fields", "error", err)
			return ctxAbort(ctx)
		}
		pageHTML = html
	}

	fields, err := extractFields(pageHTML, tmpl.FieldMap)
	if err != nil {
		logger.Warn("profile extraction failed, keeping card fields", "error", err)
		return nil
	}
	applyProfile(lead, fields, profileURL)

	if tmpl.ProfileNotes {
		if notes, notesErr := profileNotes(pageHTML, profileURL); notesErr != nil {
			logger.Debug("profile notes skipped", "error", notesErr)
		} else {
			lead.Notes = notes
		}
	}
	return nil
}

// applyProfile overlays profile-page values onto a lead's card values and
// repoints the record at the profile URL. Profile values win, but an empty
// profile value never clobbers a populated card field.
func applyProfile(lead *models.Lead, fields map[string]string, profileURL string) {
	for field, value := range fields {
		if value != "" {
			lead.Fields[field] = value
		}
	}
	lead.SourceURL = profileURL
}

// submitSearch types the query into the template's search box and clicks
// the submit control.
func submitSearch(p *rod.Page, tmpl *template.Template, query string) error {
	box, err := p.Element(tmpl.SearchSelector)
	if err != nil {
		return fmt.Errorf("search box %q not found: %w", tmpl.SearchSelector, err)
	}
	if err := box.Input(query); err != nil {
		return fmt.Errorf("typing query: %w", err)
	}
	btn, err := p.Element(tmpl.SubmitSelector)
	if err != nil {
		return fmt.Errorf("submit control %q not found: %w", tmpl.SubmitSelector, err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}
	return nil
}

// resultCount reads how many result cards the page currently renders.
// Best-effort, used for logging only.
func resultCount(p *rod.Page, selector string) int {
	res, err := p.Eval(`(sel) => document.querySelectorAll(sel).length`, selector)
	if err != nil {
		return -1
	}
	var count gson.JSON = res.Value
	return count.Int()
}

// categorize maps low-level failures onto the scrape error taxonomy.
func categorize(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	}
	return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
}

func ctxAbort(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return categorize(err, "scrape aborted")
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
