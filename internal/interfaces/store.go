package interfaces

import (
	"context"
	"errors"

	"trademood/internal/types"
)

// ErrNotFound is returned by ResultStore lookups when no entry exists for the
// requested key.
var ErrNotFound = errors.New("not found")

// ResultStore is the persistence contract the pipeline depends on: a
// write-through sentiment cache keyed by (source, text) content identity plus
// append-only histories for generated signals.
type ResultStore interface {
	// GetCachedSentiment returns the cached result for a (source, text) pair,
	// or ErrNotFound. The lookup ignores which symbol the item was first
	// analyzed for.
	GetCachedSentiment(ctx context.Context, source, text string) (*types.SentimentResult, error)

	// CacheSentiment inserts or replaces the cache entry for the result's
	// (source, text) key. Concurrent writes for the same key are idempotent.
	CacheSentiment(ctx context.Context, result *types.SentimentResult) error

	// AppendTrendSignal records a generated trend signal.
	AppendTrendSignal(ctx context.Context, signal *types.TrendSignal) error

	// AppendTradingSignal records a generated trading signal.
	AppendTradingSignal(ctx context.Context, signal *types.TradingSignal) error

	Close() error
}
