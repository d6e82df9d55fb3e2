package adapters

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"statuswatch/extract"
	"statuswatch/fetch"
	"statuswatch/types"
)

// FeedConfig declares a feed-based provider.
type FeedConfig struct {
	Name          string
	FeedURL       string
	DetailVariant extract.Variant
	KeywordRules  []extract.KeywordRule
}

// FeedAdapter polls an RSS/Atom status feed and extracts incidents with
// the three-tier fallback chain: description markup, then the incident
// detail page (when a layout variant is declared), then keyword rules.
type FeedAdapter struct {
	cfg     FeedConfig
	fetcher fetch.TextFetcher
	parser  *gofeed.Parser
}

// NewFeedAdapter builds a feed adapter over the given fetcher.
func NewFeedAdapter(cfg FeedConfig, fetcher fetch.TextFetcher) *FeedAdapter {
	return &FeedAdapter{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
	}
}

// Name returns the provider identifier.
func (a *FeedAdapter) Name() string { return a.cfg.Name }

// FetchLatest retrieves up to limit items in feed order. A feed body that
// does not parse is a malformed-response fetch error.
func (a *FeedAdapter) FetchLatest(ctx context.Context, limit int) ([]types.RawItem, error) {
	body, _, err := a.fetcher.FetchText(ctx, a.cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %s: %w", a.cfg.Name, err)
	}

	feed, err := a.parser.ParseString(body)
	if err != nil {
		return nil, &fetch.Error{Kind: fetch.KindMalformed, URL: a.cfg.FeedURL, Err: err}
	}

	count := len(feed.Items)
	if limit > 0 && limit < count {
		count = limit
	}

	items := make([]types.RawItem, 0, count)
	for _, entry := range feed.Items[:count] {
		id := entry.GUID
		if id == "" {
			id = entry.Link
		}

		var publishedAt time.Time
		if entry.PublishedParsed != nil {
			publishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			publishedAt = *entry.UpdatedParsed
		}

		items = append(items, types.RawItem{
			ID:          id,
			Title:       entry.Title,
			Link:        entry.Link,
			Published:   entry.Published,
			PublishedAt: publishedAt,
			Description: entry.Description,
		})
	}
	return items, nil
}

// Extract runs the tier chain and stops at the first tier that yields a
// candidate. Tiers are mutually exclusive outcomes, never merged. An item
// no tier recognizes produces an empty list, which is a normal outcome
// for noise items.
func (a *FeedAdapter) Extract(ctx context.Context, item types.RawItem) ([]types.Incident, error) {
	if item.Title == "" && item.Description == "" && item.Payload == nil {
		return nil, extract.ErrInvalidInput
	}

	candidates := extract.DescriptionHTML(item.Description)

	if len(candidates) == 0 && a.cfg.DetailVariant != extract.VariantNone && item.Link != "" {
		page, _, err := a.fetcher.FetchText(ctx, item.Link)
		if err != nil {
			// Tier failure is absorbed locally; the chain escalates.
			log.Printf("%s: detail page fetch failed for %s: %v", a.cfg.Name, item.Link, err)
		} else {
			candidates = extract.DetailPage(page, item.Link, item.Title, a.cfg.DetailVariant)
		}
	}

	if len(candidates) == 0 {
		candidates = extract.Keyword(item.Title, a.cfg.KeywordRules)
	}

	return buildIncidents(a.cfg.Name, item, candidates), nil
}

// buildIncidents tags candidates with the provider and item metadata.
// Candidates that fail validation are logged and dropped.
func buildIncidents(provider string, item types.RawItem, candidates []types.Candidate) []types.Incident {
	incidents := make([]types.Incident, 0, len(candidates))
	for _, c := range candidates {
		// The item title carries detail only when it is not already the
		// status text.
		description := item.Title
		if description == strings.TrimSpace(c.Status) {
			description = ""
		}
		inc, err := types.NewIncident(provider, c.Service, c.Status, item.Published, item.PublishedAt, description, item.Link)
		if err != nil {
			log.Printf("%s: dropping candidate from item %q: %v", provider, item.ID, err)
			continue
		}
		incidents = append(incidents, inc)
	}
	return incidents
}
