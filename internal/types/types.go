package types

import "time"

// Trading signal actions.
const (
	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
)

// SentimentResult is one scored text item. Identity for caching purposes is
// the (Source, Text) pair; the symbol only records what the item was analyzed
// for. Immutable once created.
type SentimentResult struct {
	Symbol          string    `json:"symbol"`
	Text            string    `json:"text"`
	Source          string    `json:"source"`
	Timestamp       time.Time `json:"timestamp"`
	LexiconScore    float64   `json:"lexicon_score"`
	ModelScore      float64   `json:"model_score"`
	NormalizedScore float64   `json:"normalized_score"`
	Keywords        []string  `json:"keywords"`
}

// TrendSignal is a point-in-time read of sentiment momentum. Superseded, never
// merged, by the next pipeline run.
type TrendSignal struct {
	Timestamp       time.Time `json:"timestamp"`
	ShortTermTrend  float64   `json:"short_term_trend"`
	MediumTermTrend float64   `json:"medium_term_trend"`
	LongTermTrend   float64   `json:"long_term_trend"`
	TrendStrength   float64   `json:"trend_strength"`
	ChangeDirection int       `json:"change_direction"`
}

// TradingSignal is the terminal output of one pipeline run.
type TradingSignal struct {
	Timestamp      time.Time `json:"timestamp"`
	Symbol         string    `json:"symbol"`
	SentimentScore float64   `json:"sentiment_score"`
	Price          float64   `json:"price"`
	Signal         string    `json:"signal"`
	Confidence     float64   `json:"confidence"`
}

// ContentItem is one unit of raw text plus metadata from a content source.
type ContentItem struct {
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Link        string     `json:"link"`
	Published   *time.Time `json:"published,omitempty"`
	ContentType string     `json:"content_type"` // "rss" or "web"
}

// ScoreResult is the raw output of a single scorer: a label plus confidence
// for classifier-style scorers, or just a signed compound score for
// lexicon-style scorers.
type ScoreResult struct {
	Label      string  `json:"label"` // "positive", "negative", "neutral"
	Confidence float64 `json:"confidence"`
	Compound   float64 `json:"compound"`
}

// Signed converts a classifier result into a score in [-1,1]: positive maps
// to +confidence, negative to -confidence, anything else to 0.
func (r ScoreResult) Signed() float64 {
	switch r.Label {
	case "positive":
		return r.Confidence
	case "negative":
		return -r.Confidence
	}
	return 0
}
