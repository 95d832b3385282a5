package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trademood/internal/logger"
	"trademood/internal/types"
)

const userAgent = "Mozilla/5.0 (compatible; trademood/1.0)"

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// pubDateLayouts covers the date formats seen in the wild on RSS feeds.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// fetchRSSFeed downloads and parses one RSS feed. The feed URL doubles as the
// item source identifier.
func (f *Fetcher) fetchRSSFeed(ctx context.Context, feedURL string) ([]types.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	items := make([]types.ContentItem, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		item := types.ContentItem{
			Source:      feedURL,
			Title:       strings.TrimSpace(it.Title),
			Summary:     strings.TrimSpace(it.Description),
			Link:        strings.TrimSpace(it.Link),
			ContentType: "rss",
		}
		if pub, ok := parsePubDate(it.PubDate); ok {
			item.Published = &pub
		} else if it.PubDate != "" {
			logger.Warn(ctx, "Unparseable pubDate, falling back to observation time",
				"feed", feedURL, "pub_date", it.PubDate)
		}
		items = append(items, item)
	}
	return items, nil
}

func parsePubDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
