package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"trademood/internal/interfaces"
	"trademood/internal/logger"
	"trademood/internal/schedule"
	"trademood/internal/sentiment"
	"trademood/internal/store"
	"trademood/internal/trace"
	"trademood/internal/types"
)

// Price lookback windows tried in order; a run that exhausts both proceeds
// with a zero price rather than failing.
const (
	primaryPriceWindow  = "5d"
	fallbackPriceWindow = "30d"
)

// Pipeline orchestrates one end-to-end run: fetch content, analyze every
// item, aggregate the batch into a trend signal, price it, and emit a trading
// signal. Runs are serialized by a mutex so a scheduled firing can never
// overlap a run still in progress.
type Pipeline struct {
	fetcher  interfaces.ContentSource
	analyzer *sentiment.Analyzer
	trends   *sentiment.TrendGenerator
	signals  *sentiment.SignalGenerator
	prices   interfaces.PriceFeed
	store    interfaces.ResultStore

	symbol  string
	session func(time.Time) bool

	runMu   sync.Mutex
	trigger *schedule.Trigger
}

// Params bundles the pipeline's collaborators and run configuration.
type Params struct {
	Fetcher   interfaces.ContentSource
	Analyzer  *sentiment.Analyzer
	Trends    *sentiment.TrendGenerator
	Signals   *sentiment.SignalGenerator
	Prices    interfaces.PriceFeed
	Store     interfaces.ResultStore
	Symbol    string
	IsSession func(time.Time) bool
}

func New(p Params) *Pipeline {
	return &Pipeline{
		fetcher:  p.Fetcher,
		analyzer: p.Analyzer,
		trends:   p.Trends,
		signals:  p.Signals,
		prices:   p.Prices,
		store:    p.Store,
		symbol:   p.Symbol,
		session:  p.IsSession,
	}
}

// Run executes one full pipeline pass for the configured symbol. Per-item and
// per-stage failures are absorbed and logged; a run with insufficient data
// completes with zero signals. Only a systemic failure (context cancelled)
// propagates to the caller.
func (p *Pipeline) Run(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	ctx, span := trace.StartSpan(ctx, "pipeline-run")
	defer span.End()

	logger.Info(ctx, "Starting sentiment pipeline", "symbol", p.symbol)

	items := p.fetcher.FetchAll(ctx)
	logger.Info(ctx, "Fetched content items", "count", len(items))
	if err := ctx.Err(); err != nil {
		return err
	}

	results := make([]types.SentimentResult, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(strings.TrimSpace(item.Title) + " " + strings.TrimSpace(item.Summary))
		if result := p.analyzer.Analyze(ctx, text, item.Source, p.symbol, item.Published); result != nil {
			results = append(results, *result)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(results) == 0 {
		logger.Warn(ctx, "No sentiment results to analyze", "symbol", p.symbol)
		return nil
	}
	logger.Info(ctx, "Analyzed sentiment results", "count", len(results))

	trend := p.trends.Generate(ctx, results)
	if trend == nil {
		logger.Warn(ctx, "No trend signal this run", "symbol", p.symbol)
		return nil
	}
	logger.Info(ctx, "Generated trend signal",
		"short", trend.ShortTermTrend,
		"medium", trend.MediumTermTrend,
		"long", trend.LongTermTrend,
		"strength", trend.TrendStrength,
		"direction", trend.ChangeDirection)

	if err := p.store.AppendTrendSignal(ctx, trend); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist trend signal", err)
	}

	price := p.currentPrice(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	trading := p.signals.Generate(ctx, p.symbol, trend, price)
	if trading == nil {
		return nil
	}

	if err := p.store.AppendTradingSignal(ctx, trading); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist trading signal", err)
	}

	logger.Signal(ctx, trading.Symbol, trading.Signal, trading.Confidence, trading.Price)
	logger.Info(ctx, "Completed sentiment pipeline", "symbol", p.symbol)
	return nil
}

// currentPrice tries the primary lookback window, then the fallback, then
// gives up with a zero price so the signal stage still runs.
func (p *Pipeline) currentPrice(ctx context.Context) float64 {
	price, err := p.prices.RecentClose(ctx, p.symbol, primaryPriceWindow)
	if err == nil {
		return price
	}
	logger.Warn(ctx, "No price data in primary window, trying fallback",
		"symbol", p.symbol, "window", primaryPriceWindow, "error", err)

	price, err = p.prices.RecentClose(ctx, p.symbol, fallbackPriceWindow)
	if err == nil {
		return price
	}
	logger.ErrorWithErr(ctx, "No price data available, using zero price", err, "symbol", p.symbol)
	return 0.0
}

// StartScheduled begins periodic runs at the cadence derived from the
// update-frequency token, restricted to the instrument's trading session. An
// immediate first run fires in the background, matching a fresh deployment's
// expectation of not waiting a full cadence for its first signal.
func (p *Pipeline) StartScheduled(frequency string) error {
	cadence := time.Duration(store.CadenceMinutes(frequency)) * time.Minute
	p.trigger = schedule.NewTrigger(cadence, p.session)

	if err := p.trigger.Start(p.scheduledRun); err != nil {
		return err
	}

	go p.scheduledRun()

	logger.Info(context.Background(), "Started scheduled runs",
		"symbol", p.symbol, "cadence", cadence.String())
	return nil
}

// StopScheduled cancels future runs without interrupting one in flight.
func (p *Pipeline) StopScheduled() {
	if p.trigger == nil {
		return
	}
	p.trigger.Stop()
	logger.Info(context.Background(), "Stopped scheduled runs", "symbol", p.symbol)
}

func (p *Pipeline) scheduledRun() {
	if err := p.Run(context.Background()); err != nil {
		logger.ErrorWithErr(context.Background(), "Scheduled pipeline run failed", err, "symbol", p.symbol)
	}
}
