package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trademood/internal/sentiment"
	"trademood/internal/storage"
	"trademood/internal/types"
)

type fakeSource struct {
	items []types.ContentItem
}

func (f *fakeSource) FetchAll(ctx context.Context) []types.ContentItem { return f.items }

type fakePrices struct {
	prices  map[string]float64
	windows []string
}

func (f *fakePrices) RecentClose(ctx context.Context, symbol, window string) (float64, error) {
	f.windows = append(f.windows, window)
	if price, ok := f.prices[window]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("no data in window %s", window)
}

func newsItems(n int) []types.ContentItem {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	items := make([]types.ContentItem, n)
	for i := range items {
		ts := base.Add(time.Duration(i) * time.Hour)
		items[i] = types.ContentItem{
			Source:      "test-feed",
			Title:       fmt.Sprintf("gold surge rally strong report%02d", i),
			Published:   &ts,
			ContentType: "rss",
		}
	}
	return items
}

func testPipeline(fetcher *fakeSource, prices *fakePrices, store *storage.MemoryStore) *Pipeline {
	analyzer := sentiment.NewAnalyzer(
		sentiment.NewLexiconScorer(),
		sentiment.NewNoopScorer(),
		store,
		sentiment.DefaultAnalyzerConfig(),
	)
	return New(Params{
		Fetcher:  fetcher,
		Analyzer: analyzer,
		Trends:   sentiment.NewTrendGenerator(sentiment.DefaultTrendWindows(), time.Hour),
		Signals:  sentiment.NewSignalGenerator(sentiment.DefaultThresholds()),
		Prices:   prices,
		Store:    store,
		Symbol:   "GC=F",
	})
}

func TestRunProducesSignals(t *testing.T) {
	store := storage.NewMemoryStore()
	prices := &fakePrices{prices: map[string]float64{"5d": 1900}}
	p := testPipeline(&fakeSource{items: newsItems(20)}, prices, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	trends := store.TrendSignals()
	if len(trends) != 1 {
		t.Fatalf("trend signals = %d, want 1", len(trends))
	}

	trading := store.TradingSignals()
	if len(trading) != 1 {
		t.Fatalf("trading signals = %d, want 1", len(trading))
	}
	signal := trading[0]
	if signal.Symbol != "GC=F" {
		t.Errorf("symbol = %q", signal.Symbol)
	}
	if signal.Price != 1900 {
		t.Errorf("price = %v, want 1900 from the primary window", signal.Price)
	}
	// Uniformly positive sentiment is a flat series: strength 0 caps the
	// confidence at 0, so the decision is HOLD.
	if signal.Signal != types.SignalHold {
		t.Errorf("signal = %q, want HOLD for a flat series", signal.Signal)
	}
}

func TestRunEmptyContent(t *testing.T) {
	store := storage.NewMemoryStore()
	p := testPipeline(&fakeSource{}, &fakePrices{}, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(store.TrendSignals()) != 0 || len(store.TradingSignals()) != 0 {
		t.Error("expected no signals for an empty run")
	}
}

func TestRunInsufficientData(t *testing.T) {
	store := storage.NewMemoryStore()
	p := testPipeline(&fakeSource{items: newsItems(5)}, &fakePrices{}, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(store.TradingSignals()) != 0 {
		t.Error("expected no trading signal below the long window")
	}
}

func TestRunPriceFallback(t *testing.T) {
	store := storage.NewMemoryStore()
	prices := &fakePrices{prices: map[string]float64{"30d": 1850}}
	p := testPipeline(&fakeSource{items: newsItems(20)}, prices, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(prices.windows) != 2 || prices.windows[0] != "5d" || prices.windows[1] != "30d" {
		t.Errorf("price windows tried = %v, want [5d 30d]", prices.windows)
	}
	trading := store.TradingSignals()
	if len(trading) != 1 {
		t.Fatalf("trading signals = %d, want 1", len(trading))
	}
	if trading[0].Price != 1850 {
		t.Errorf("price = %v, want the fallback window close 1850", trading[0].Price)
	}
}

func TestRunNoPriceDataUsesZero(t *testing.T) {
	store := storage.NewMemoryStore()
	p := testPipeline(&fakeSource{items: newsItems(20)}, &fakePrices{}, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	trading := store.TradingSignals()
	if len(trading) != 1 {
		t.Fatalf("trading signals = %d, want 1: a run without prices still signals", len(trading))
	}
	if trading[0].Price != 0 {
		t.Errorf("price = %v, want 0 when both windows fail", trading[0].Price)
	}
}

func TestRunCancelledContext(t *testing.T) {
	store := storage.NewMemoryStore()
	p := testPipeline(&fakeSource{items: newsItems(20)}, &fakePrices{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestRunReusesCachedSentiment(t *testing.T) {
	store := storage.NewMemoryStore()
	prices := &fakePrices{prices: map[string]float64{"5d": 1900}}
	p := testPipeline(&fakeSource{items: newsItems(20)}, prices, store)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	// Same content both runs: cache hits still feed the aggregation, so the
	// second run appends its own signals.
	if got := len(store.TradingSignals()); got != 2 {
		t.Errorf("trading signals = %d, want 2", got)
	}
}
