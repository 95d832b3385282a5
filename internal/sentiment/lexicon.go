package sentiment

import (
	"context"
	"strings"
	"unicode"

	"trademood/internal/interfaces"
	"trademood/internal/types"
)

// LexiconScorer is a dictionary-based sentiment scorer. It counts positive,
// negative and hedging words and converts the net ratio into a compound score
// in [-1,1]. No learned parameters, no network calls.
type LexiconScorer struct {
	positiveWords    map[string]bool
	negativeWords    map[string]bool
	uncertaintyWords map[string]bool
}

var _ interfaces.Scorer = (*LexiconScorer)(nil)

// NewLexiconScorer creates a scorer with the built-in financial word lists.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positiveWords:    loadPositiveWords(),
		negativeWords:    loadNegativeWords(),
		uncertaintyWords: loadUncertaintyWords(),
	}
}

// Score computes a compound sentiment score for the raw text. It never
// returns an error; the error value exists only to satisfy the Scorer
// contract shared with the learned-model scorer.
func (s *LexiconScorer) Score(ctx context.Context, text string) (types.ScoreResult, error) {
	words := tokenize(strings.ToLower(text))
	if len(words) == 0 {
		return types.ScoreResult{Label: "neutral"}, nil
	}

	positive, negative, uncertainty := 0, 0, 0
	for _, word := range words {
		if s.positiveWords[word] {
			positive++
		}
		if s.negativeWords[word] {
			negative++
		}
		if s.uncertaintyWords[word] {
			uncertainty++
		}
	}

	total := float64(len(words))
	netRatio := (float64(positive) - float64(negative)) / total

	// Typical sentiment-bearing text carries well under 10% lexicon hits, so
	// the net ratio is amplified before clamping. Hedging language halves the
	// signal at the extreme.
	compound := clamp(netRatio*10, -1, 1)
	uncertaintyScore := clamp(float64(uncertainty)/total*20, 0, 1)
	compound *= 1.0 - uncertaintyScore*0.5

	label := "neutral"
	if compound > 0 {
		label = "positive"
	} else if compound < 0 {
		label = "negative"
	}

	return types.ScoreResult{
		Label:      label,
		Confidence: abs(compound),
		Compound:   compound,
	}, nil
}

func tokenize(text string) []string {
	var words []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func loadPositiveWords() map[string]bool {
	return wordSet(
		"gain", "gains", "gained", "rally", "rallies", "surge", "surged", "soar",
		"soared", "soars", "rise", "rises", "rose", "rising", "climb", "climbs",
		"climbed", "jump", "jumped", "jumps", "boost", "boosted", "strong",
		"stronger", "strength", "bullish", "bull", "record", "outperform",
		"outperformed", "beat", "beats", "upgrade", "upgraded", "growth", "grow",
		"grew", "profit", "profits", "profitable", "positive", "optimistic",
		"optimism", "recovery", "recovered", "rebound", "rebounded", "momentum",
		"upside", "higher", "high", "advance", "advanced", "improve", "improved",
		"improving", "robust", "solid", "success", "successful", "win", "winning",
		"buy", "buying", "demand", "opportunity", "breakout", "exceed", "exceeded",
	)
}

func loadNegativeWords() map[string]bool {
	return wordSet(
		"loss", "losses", "lost", "fall", "falls", "fell", "falling", "drop",
		"dropped", "drops", "plunge", "plunged", "plunges", "crash", "crashed",
		"tumble", "tumbled", "slump", "slumped", "slide", "slides", "slid",
		"decline", "declined", "declines", "declining", "weak", "weaker",
		"weakness", "bearish", "bear", "downgrade", "downgraded", "miss",
		"missed", "misses", "negative", "pessimistic", "pessimism", "fear",
		"fears", "worry", "worries", "worried", "concern", "concerns",
		"concerned", "risk", "risks", "risky", "sell", "selling", "selloff",
		"lower", "low", "downturn", "recession", "crisis", "default", "debt",
		"inflation", "volatile", "volatility", "warning", "warn", "warned",
		"cut", "cuts", "struggle", "struggled", "pressure", "downside", "drag",
	)
}

func loadUncertaintyWords() map[string]bool {
	return wordSet(
		"may", "might", "could", "possibly", "perhaps", "uncertain",
		"uncertainty", "unclear", "unknown", "approximately", "roughly",
		"somewhat", "appears", "appear", "seems", "seem", "likely", "unlikely",
		"probable", "speculation", "speculative", "pending", "depends",
		"volatile", "cautious", "caution", "await", "awaiting", "mixed",
	)
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
