package sentiment

import (
	"context"
	"time"

	"trademood/internal/logger"
	"trademood/internal/types"
)

// Thresholds configure the signal decision rules. Immutable per instance.
type Thresholds struct {
	Buy        float64
	Sell       float64
	Confidence float64
}

// DefaultThresholds returns the standard 0.5/-0.5/0.7 calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{Buy: 0.5, Sell: -0.5, Confidence: 0.7}
}

// SignalGenerator converts the latest trend signal plus a price observation
// into a gated trading signal. Pure function over its inputs.
type SignalGenerator struct {
	thresholds Thresholds
	now        func() time.Time
}

// NewSignalGenerator creates a generator with the given thresholds.
func NewSignalGenerator(thresholds Thresholds) *SignalGenerator {
	return &SignalGenerator{thresholds: thresholds, now: time.Now}
}

// Generate produces the trading signal for one run, or nil when no trend
// signal is available. The confidence gate can only force a decision to HOLD,
// never away from it.
func (g *SignalGenerator) Generate(ctx context.Context, symbol string, trend *types.TrendSignal, currentPrice float64) *types.TradingSignal {
	if trend == nil {
		return nil
	}

	signal := types.SignalHold
	if trend.ShortTermTrend > g.thresholds.Buy {
		signal = types.SignalBuy
	} else if trend.ShortTermTrend < g.thresholds.Sell {
		signal = types.SignalSell
	}

	// Confidence is capped by whichever of short-term magnitude or divergence
	// strength is weaker.
	confidence := min(abs(trend.ShortTermTrend), trend.TrendStrength)

	if confidence < g.thresholds.Confidence && signal != types.SignalHold {
		logger.Debug(ctx, "Signal gated to HOLD by confidence threshold",
			"symbol", symbol, "base_signal", signal,
			"confidence", confidence, "threshold", g.thresholds.Confidence)
		signal = types.SignalHold
	}

	return &types.TradingSignal{
		Timestamp:      g.now().UTC(),
		Symbol:         symbol,
		SentimentScore: trend.ShortTermTrend,
		Price:          currentPrice,
		Signal:         signal,
		Confidence:     confidence,
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
