package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"trademood/internal/fetch"
	"trademood/internal/interfaces"
	"trademood/internal/logger"
	"trademood/internal/pipeline"
	"trademood/internal/pricefeed"
	"trademood/internal/sentiment"
	"trademood/internal/storage"
	"trademood/internal/store"
	"trademood/internal/trace"
)

// Application holds the wired pipeline and the resources it owns.
type Application struct {
	Pipeline *pipeline.Pipeline
	store    interfaces.ResultStore
}

func (a *Application) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// buildApplication wires every collaborator into a ready pipeline. A storage
// open failure is returned as-is: the system cannot run without its store.
func buildApplication(ctx context.Context, cfg *store.Config) (*Application, error) {
	resultStore, err := storage.OpenBadgerStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	analyzer := sentiment.NewAnalyzer(
		sentiment.NewLexiconScorer(),
		buildModelScorer(ctx, cfg),
		resultStore,
		sentiment.AnalyzerConfig{
			MaxTextLength: cfg.Analyzer.MaxTextLength,
			TopKeywords:   cfg.Analyzer.TopKeywords,
			LexiconWeight: cfg.Analyzer.LexiconWeight,
			ModelWeight:   cfg.Analyzer.ModelWeight,
		},
	)

	trends := sentiment.NewTrendGenerator(
		sentiment.TrendWindows{
			Short:  cfg.Trend.ShortWindow,
			Medium: cfg.Trend.MediumWindow,
			Long:   cfg.Trend.LongWindow,
		},
		store.BinDuration(cfg.UpdateFrequency),
	)

	signals := sentiment.NewSignalGenerator(sentiment.Thresholds{
		Buy:        cfg.Thresholds.Buy,
		Sell:       cfg.Thresholds.Sell,
		Confidence: cfg.Thresholds.Confidence,
	})

	fetcher := fetch.NewFetcher(
		cfg.Sources.RSS,
		cfg.Sources.Scraping,
		time.Duration(cfg.Sources.TimeoutSeconds)*time.Second,
	)

	pipe := pipeline.New(pipeline.Params{
		Fetcher:   fetcher,
		Analyzer:  analyzer,
		Trends:    trends,
		Signals:   signals,
		Prices:    buildPriceFeed(ctx, cfg),
		Store:     resultStore,
		Symbol:    cfg.Symbol,
		IsSession: cfg.IsActiveSession,
	})

	return &Application{Pipeline: pipe, store: resultStore}, nil
}

// buildModelScorer selects the learned-model scorer implementation
func buildModelScorer(ctx context.Context, cfg *store.Config) interfaces.Scorer {
	switch cfg.Model.Provider {
	case "REMOTE":
		return sentiment.NewRemoteScorer(
			cfg.Model.Endpoint,
			cfg.Model.Name,
			cfg.Model.APIKeyEnv,
			time.Duration(cfg.Model.TimeoutSeconds)*time.Second,
		)
	default:
		logger.Warn(ctx, "No model provider configured - using neutral scorer")
		return sentiment.NewNoopScorer()
	}
}

// buildPriceFeed selects the price feed implementation
func buildPriceFeed(ctx context.Context, cfg *store.Config) interfaces.PriceFeed {
	switch cfg.PriceFeed.Provider {
	case "KITE":
		return pricefeed.NewKiteFeed(
			os.Getenv("KITE_API_KEY"),
			os.Getenv("KITE_ACCESS_TOKEN"),
			cfg.PriceFeed.Exchange,
		)
	default:
		return pricefeed.NewYahooFeed(10 * time.Second)
	}
}
