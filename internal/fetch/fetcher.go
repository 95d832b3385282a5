package fetch

import (
	"context"
	"net/http"
	"time"

	"trademood/internal/interfaces"
	"trademood/internal/logger"
	"trademood/internal/store"
	"trademood/internal/types"
)

// Fetcher is the content acquisition layer: it collects text items from the
// configured RSS feeds and scraped web pages. Per-source failures are logged
// and skipped so one dead feed never empties a run.
type Fetcher struct {
	rssFeeds []string
	scraping []store.ScrapeSource
	timeout  time.Duration
	client   *http.Client
}

var _ interfaces.ContentSource = (*Fetcher)(nil)

// NewFetcher creates a fetcher for the configured sources with a per-request
// timeout.
func NewFetcher(rssFeeds []string, scraping []store.ScrapeSource, timeout time.Duration) *Fetcher {
	return &Fetcher{
		rssFeeds: rssFeeds,
		scraping: scraping,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

// FetchAll collects content from every configured source, in configuration
// order, returning whatever it could gather.
func (f *Fetcher) FetchAll(ctx context.Context) []types.ContentItem {
	results := []types.ContentItem{}

	for _, feedURL := range f.rssFeeds {
		items, err := f.fetchRSSFeed(ctx, feedURL)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch RSS feed", err, "feed", feedURL)
			continue
		}
		results = append(results, items...)
	}

	for _, src := range f.scraping {
		items, err := f.scrapeWebSource(ctx, src)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape web source", err, "source", src.Name)
			continue
		}
		results = append(results, items...)
	}

	logger.Info(ctx, "Content fetch completed",
		"rss_feeds", len(f.rssFeeds), "scrape_sources", len(f.scraping), "items", len(results))
	return results
}
