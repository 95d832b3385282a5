package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trademood/internal/interfaces"
	"trademood/internal/types"
)

func TestMemoryStoreCache(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetCachedSentiment(ctx, "feed-a", "gold climbs")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	require.NoError(t, store.CacheSentiment(ctx, &types.SentimentResult{
		Source: "feed-a", Text: "gold climbs", NormalizedScore: 0.4,
	}))

	got, err := store.GetCachedSentiment(ctx, "feed-a", "gold climbs")
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.NormalizedScore)

	// The returned result is a copy; mutating it must not touch the cache.
	got.NormalizedScore = -1
	again, err := store.GetCachedSentiment(ctx, "feed-a", "gold climbs")
	require.NoError(t, err)
	assert.Equal(t, 0.4, again.NormalizedScore)
}

func TestMemoryStoreAppendSignals(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AppendTrendSignal(ctx, &types.TrendSignal{ShortTermTrend: 0.1}))
	require.NoError(t, store.AppendTrendSignal(ctx, &types.TrendSignal{ShortTermTrend: 0.2}))
	require.NoError(t, store.AppendTradingSignal(ctx, &types.TradingSignal{Signal: types.SignalHold}))

	assert.Len(t, store.TrendSignals(), 2)
	require.Len(t, store.TradingSignals(), 1)
	assert.Equal(t, types.SignalHold, store.TradingSignals()[0].Signal)
}
