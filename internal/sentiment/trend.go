package sentiment

import (
	"context"
	"sort"
	"time"

	"trademood/internal/logger"
	"trademood/internal/types"
)

// TrendWindows are the rolling-window lengths, in resampled bins, for the
// three horizons. Must be ascending.
type TrendWindows struct {
	Short  int
	Medium int
	Long   int
}

// DefaultTrendWindows returns the standard 3/7/14 sample windows.
func DefaultTrendWindows() TrendWindows {
	return TrendWindows{Short: 3, Medium: 7, Long: 14}
}

// TrendGenerator turns a batch of sentiment results into a single trend
// signal: resample the scores into fixed-width time bins, forward-fill gaps,
// then read the trailing rolling mean at each horizon. Pure function over its
// input; window and bin configuration is immutable per instance.
type TrendGenerator struct {
	windows TrendWindows
	bin     time.Duration
	now     func() time.Time
}

type scorePoint struct {
	ts    time.Time
	score float64
}

// NewTrendGenerator creates a generator with the given windows and
// resampling bin width.
func NewTrendGenerator(windows TrendWindows, bin time.Duration) *TrendGenerator {
	return &TrendGenerator{windows: windows, bin: bin, now: time.Now}
}

// Generate computes the trend signal for one run. Returns nil when there is
// not enough data for the longest window, before or after resampling; nil is
// the "no signal this run" outcome, not an error.
func (g *TrendGenerator) Generate(ctx context.Context, results []types.SentimentResult) *types.TrendSignal {
	minRequired := g.windows.Long
	if len(results) < minRequired {
		logger.Warn(ctx, "Insufficient data for trend analysis",
			"samples", len(results), "required", minRequired)
		return nil
	}

	points := make([]scorePoint, len(results))
	for i, r := range results {
		points[i] = scorePoint{ts: r.Timestamp, score: r.NormalizedScore}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ts.Before(points[j].ts) })

	series := g.resample(points)
	if len(series) < minRequired {
		logger.Warn(ctx, "Insufficient bins after resampling",
			"bins", len(series), "required", minRequired)
		return nil
	}

	short, okS := trailingMean(series, g.windows.Short)
	medium, okM := trailingMean(series, g.windows.Medium)
	long, okL := trailingMean(series, g.windows.Long)
	if !okS || !okM || !okL {
		logger.Warn(ctx, "Undefined rolling mean, insufficient trailing history")
		return nil
	}

	return &types.TrendSignal{
		Timestamp:       g.now().UTC(),
		ShortTermTrend:  short,
		MediumTermTrend: medium,
		LongTermTrend:   long,
		TrendStrength:   trendStrength(short, medium, long),
		ChangeDirection: changeDirection(short, medium, long),
	}
}

// resample buckets the sorted points into fixed-width bins, averaging within
// each bin. Interior bins with no observations take the value of the most
// recent non-empty bin. The series starts at the first observation's bin, so
// there are no leading empty bins to drop.
func (g *TrendGenerator) resample(points []scorePoint) []float64 {
	if len(points) == 0 {
		return nil
	}

	start := points[0].ts.Truncate(g.bin)
	end := points[len(points)-1].ts.Truncate(g.bin)
	nBins := int(end.Sub(start)/g.bin) + 1

	sums := make([]float64, nBins)
	counts := make([]int, nBins)
	for _, p := range points {
		idx := int(p.ts.Truncate(g.bin).Sub(start) / g.bin)
		sums[idx] += p.score
		counts[idx]++
	}

	series := make([]float64, nBins)
	for i := 0; i < nBins; i++ {
		if counts[i] > 0 {
			series[i] = sums[i] / float64(counts[i])
		} else {
			series[i] = series[i-1] // bin 0 always has the first observation
		}
	}
	return series
}

// trailingMean returns the mean of the last window values, reporting false
// when the series is shorter than the window.
func trailingMean(series []float64, window int) (float64, bool) {
	if window <= 0 || len(series) < window {
		return 0, false
	}
	sum := 0.0
	for _, v := range series[len(series)-window:] {
		sum += v
	}
	return sum / float64(window), true
}

// trendStrength is a bounded divergence measure across the three horizons.
// The x10 scale factor is a fixed calibration constant.
func trendStrength(short, medium, long float64) float64 {
	divergence := abs(short-medium) + abs(medium-long)
	return clamp(divergence*10, 0, 1)
}

// changeDirection is +1 for a strictly ascending horizon chain, -1 for a
// strictly descending one, 0 for anything non-monotonic.
func changeDirection(short, medium, long float64) int {
	switch {
	case short > medium && medium > long:
		return 1
	case short < medium && medium < long:
		return -1
	}
	return 0
}
