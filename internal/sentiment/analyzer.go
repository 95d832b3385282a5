package sentiment

import (
	"context"
	"errors"
	"time"

	"trademood/internal/interfaces"
	"trademood/internal/logger"
	"trademood/internal/trace"
	"trademood/internal/types"
)

// AnalyzerConfig holds the fixed calibration of the analyzer. The weights are
// design constants with 0.6/0.4 defaults, not call-time parameters.
type AnalyzerConfig struct {
	MaxTextLength int
	TopKeywords   int
	LexiconWeight float64
	ModelWeight   float64
}

// DefaultAnalyzerConfig returns the standard analyzer calibration.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MaxTextLength: 100,
		TopKeywords:   5,
		LexiconWeight: 0.6,
		ModelWeight:   0.4,
	}
}

// Analyzer scores text items for sentiment. It runs a lexicon scorer over the
// raw text and a learned-model scorer over the cleaned text, combines the two
// deterministically and writes results through the cache so the same
// (source, text) content is never scored twice.
type Analyzer struct {
	lexicon interfaces.Scorer
	model   interfaces.Scorer
	store   interfaces.ResultStore
	cfg     AnalyzerConfig
	now     func() time.Time
}

// NewAnalyzer wires the two scorers and the result store together.
func NewAnalyzer(lexicon, model interfaces.Scorer, store interfaces.ResultStore, cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{
		lexicon: lexicon,
		model:   model,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Analyze scores one text item. A cache hit on (source, text) returns the
// stored result without rescoring. Model scorer failures degrade to a neutral
// model contribution; store failures still return the computed result. A nil
// return means the item produced nothing usable and was logged, so one bad
// item never fails a batch.
func (a *Analyzer) Analyze(ctx context.Context, text, source, symbol string, published *time.Time) *types.SentimentResult {
	ctx, span := trace.StartSpan(ctx, "analyze-sentiment")
	defer span.End()

	if text == "" {
		return nil
	}

	cached, err := a.store.GetCachedSentiment(ctx, source, text)
	if err == nil {
		return cached
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		// A broken cache read degrades to a miss; the write below may still
		// succeed.
		logger.Warn(ctx, "Sentiment cache lookup failed", "source", source, "error", err)
	}

	timestamp := a.now().UTC()
	if published != nil {
		timestamp = published.UTC()
	}

	lexResult, err := a.lexicon.Score(ctx, text)
	if err != nil {
		logger.ErrorWithErr(ctx, "Lexicon scoring failed", err, "source", source)
		return nil
	}
	lexiconScore := lexResult.Compound

	modelScore := 0.0
	cleaned := CleanText(text, a.cfg.MaxTextLength)
	if modelResult, err := a.model.Score(ctx, cleaned); err != nil {
		logger.ErrorWithErr(ctx, "Model scoring failed, using neutral contribution", err, "source", source)
	} else {
		modelScore = modelResult.Signed()
	}

	result := &types.SentimentResult{
		Symbol:          symbol,
		Text:            text,
		Source:          source,
		Timestamp:       timestamp,
		LexiconScore:    lexiconScore,
		ModelScore:      modelScore,
		NormalizedScore: a.cfg.LexiconWeight*lexiconScore + a.cfg.ModelWeight*modelScore,
		Keywords:        ExtractKeywords(text, a.cfg.TopKeywords),
	}

	if err := a.store.CacheSentiment(ctx, result); err != nil {
		logger.ErrorWithErr(ctx, "Failed to cache sentiment result", err, "source", source)
	}

	return result
}
