package storage

import (
	"context"
	"sync"

	"trademood/internal/interfaces"
	"trademood/internal/types"
)

// MemoryStore is an in-process ResultStore. Used in tests and for throwaway
// runs where nothing should touch disk.
type MemoryStore struct {
	mu      sync.RWMutex
	cache   map[string]types.SentimentResult
	trends  []types.TrendSignal
	trading []types.TradingSignal
}

var _ interfaces.ResultStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: make(map[string]types.SentimentResult)}
}

func (s *MemoryStore) GetCachedSentiment(ctx context.Context, source, text string) (*types.SentimentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.cache[cacheKey(source, text)]; ok {
		out := r
		return &out, nil
	}
	return nil, interfaces.ErrNotFound
}

func (s *MemoryStore) CacheSentiment(ctx context.Context, result *types.SentimentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[cacheKey(result.Source, result.Text)] = *result
	return nil
}

func (s *MemoryStore) AppendTrendSignal(ctx context.Context, signal *types.TrendSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = append(s.trends, *signal)
	return nil
}

func (s *MemoryStore) AppendTradingSignal(ctx context.Context, signal *types.TradingSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trading = append(s.trading, *signal)
	return nil
}

// TrendSignals returns a copy of the stored trend history.
func (s *MemoryStore) TrendSignals() []types.TrendSignal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.TrendSignal, len(s.trends))
	copy(out, s.trends)
	return out
}

// TradingSignals returns a copy of the stored trading-signal history.
func (s *MemoryStore) TradingSignals() []types.TradingSignal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.TradingSignal, len(s.trading))
	copy(out, s.trading)
	return out
}

func (s *MemoryStore) Close() error { return nil }
