package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"trademood/internal/logger"
	"trademood/internal/store"
	"trademood/internal/types"
)

// scrapeWebSource pulls headline text from a web page using the source's CSS
// selector. Scraped items have no publish metadata; the analyzer timestamps
// them at observation time.
func (f *Fetcher) scrapeWebSource(ctx context.Context, src store.ScrapeSource) ([]types.ContentItem, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.URL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	items := []types.ContentItem{}
	c.OnHTML(src.HeadlineSelector, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.Text)
		if title == "" {
			return
		}
		items = append(items, types.ContentItem{
			Source:      src.URL,
			Title:       title,
			Link:        src.URL,
			ContentType: "web",
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", src.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", src.URL, err)
	}
	c.Wait()

	return items, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
