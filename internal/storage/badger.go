package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"trademood/internal/interfaces"
	"trademood/internal/types"
)

const keywordDelimiter = ","

// cachedSentiment is the persisted shape of the sentiment cache. One record
// per (source, text) content identity; inserts for an existing key replace
// the record.
type cachedSentiment struct {
	Symbol          string
	Source          string
	Text            string
	Timestamp       time.Time
	LexiconScore    float64
	ModelScore      float64
	NormalizedScore float64
	Keywords        string // delimited list
}

// trendRecord and tradingRecord are append-only signal histories.
type trendRecord struct {
	Timestamp       time.Time
	ShortTermTrend  float64
	MediumTermTrend float64
	LongTermTrend   float64
	TrendStrength   float64
	ChangeDirection int
}

type tradingRecord struct {
	Timestamp      time.Time
	Symbol         string
	SentimentScore float64
	Price          float64
	Signal         string
	Confidence     float64
}

// BadgerStore implements the ResultStore contract on an embedded Badger
// database via badgerhold.
type BadgerStore struct {
	store *badgerhold.Store
}

var _ interfaces.ResultStore = (*BadgerStore)(nil)

// OpenBadgerStore opens (creating if needed) the store at path. Failure here
// is a configuration-level error: the system cannot function without its
// store, so callers should treat it as fatal.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store at %s: %w", path, err)
	}
	return &BadgerStore{store: store}, nil
}

// cacheKey derives the content-identity key for a (source, text) pair. The
// symbol is deliberately excluded: the same content seen for two symbols is
// still the same content.
func cacheKey(source, text string) string {
	h := sha256.Sum256([]byte(source + "\x00" + text))
	return hex.EncodeToString(h[:])
}

func (s *BadgerStore) GetCachedSentiment(ctx context.Context, source, text string) (*types.SentimentResult, error) {
	var rec cachedSentiment
	err := s.store.Get(cacheKey(source, text), &rec)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sentiment cache: %w", err)
	}

	result := &types.SentimentResult{
		Symbol:          rec.Symbol,
		Text:            rec.Text,
		Source:          rec.Source,
		Timestamp:       rec.Timestamp,
		LexiconScore:    rec.LexiconScore,
		ModelScore:      rec.ModelScore,
		NormalizedScore: rec.NormalizedScore,
	}
	if rec.Keywords != "" {
		result.Keywords = strings.Split(rec.Keywords, keywordDelimiter)
	}
	return result, nil
}

func (s *BadgerStore) CacheSentiment(ctx context.Context, result *types.SentimentResult) error {
	rec := cachedSentiment{
		Symbol:          result.Symbol,
		Source:          result.Source,
		Text:            result.Text,
		Timestamp:       result.Timestamp,
		LexiconScore:    result.LexiconScore,
		ModelScore:      result.ModelScore,
		NormalizedScore: result.NormalizedScore,
		Keywords:        strings.Join(result.Keywords, keywordDelimiter),
	}
	if err := s.store.Upsert(cacheKey(result.Source, result.Text), &rec); err != nil {
		return fmt.Errorf("failed to cache sentiment result: %w", err)
	}
	return nil
}

func (s *BadgerStore) AppendTrendSignal(ctx context.Context, signal *types.TrendSignal) error {
	rec := trendRecord{
		Timestamp:       signal.Timestamp,
		ShortTermTrend:  signal.ShortTermTrend,
		MediumTermTrend: signal.MediumTermTrend,
		LongTermTrend:   signal.LongTermTrend,
		TrendStrength:   signal.TrendStrength,
		ChangeDirection: signal.ChangeDirection,
	}
	if err := s.store.Insert(badgerhold.NextSequence(), &rec); err != nil {
		return fmt.Errorf("failed to append trend signal: %w", err)
	}
	return nil
}

func (s *BadgerStore) AppendTradingSignal(ctx context.Context, signal *types.TradingSignal) error {
	rec := tradingRecord{
		Timestamp:      signal.Timestamp,
		Symbol:         signal.Symbol,
		SentimentScore: signal.SentimentScore,
		Price:          signal.Price,
		Signal:         signal.Signal,
		Confidence:     signal.Confidence,
	}
	if err := s.store.Insert(badgerhold.NextSequence(), &rec); err != nil {
		return fmt.Errorf("failed to append trading signal: %w", err)
	}
	return nil
}

// TrendSignals returns the stored trend history, oldest first.
func (s *BadgerStore) TrendSignals(ctx context.Context) ([]types.TrendSignal, error) {
	var recs []trendRecord
	if err := s.store.Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("failed to read trend signals: %w", err)
	}
	signals := make([]types.TrendSignal, len(recs))
	for i, rec := range recs {
		signals[i] = types.TrendSignal{
			Timestamp:       rec.Timestamp,
			ShortTermTrend:  rec.ShortTermTrend,
			MediumTermTrend: rec.MediumTermTrend,
			LongTermTrend:   rec.LongTermTrend,
			TrendStrength:   rec.TrendStrength,
			ChangeDirection: rec.ChangeDirection,
		}
	}
	return signals, nil
}

// TradingSignals returns the stored trading-signal history, oldest first.
func (s *BadgerStore) TradingSignals(ctx context.Context) ([]types.TradingSignal, error) {
	var recs []tradingRecord
	if err := s.store.Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("failed to read trading signals: %w", err)
	}
	signals := make([]types.TradingSignal, len(recs))
	for i, rec := range recs {
		signals[i] = types.TradingSignal{
			Timestamp:      rec.Timestamp,
			Symbol:         rec.Symbol,
			SentimentScore: rec.SentimentScore,
			Price:          rec.Price,
			Signal:         rec.Signal,
			Confidence:     rec.Confidence,
		}
	}
	return signals, nil
}

func (s *BadgerStore) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
