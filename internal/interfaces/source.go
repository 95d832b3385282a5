package interfaces

import (
	"context"

	"trademood/internal/types"
)

// ContentSource supplies raw text items for analysis. Implementations fetch
// from RSS feeds, scraped web pages, or anything else that yields titled text
// with publish metadata. Per-source failures are absorbed: FetchAll returns
// whatever it could collect.
type ContentSource interface {
	FetchAll(ctx context.Context) []types.ContentItem
}
