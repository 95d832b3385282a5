package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"trademood/internal/logger"
	"trademood/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	ctx := context.Background()

	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}
	defer trace.Shutdown(ctx)

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build application", err)
		os.Exit(1)
	}
	defer app.Close()

	if *once {
		if err := app.Pipeline.Run(ctx); err != nil {
			logger.ErrorWithErr(ctx, "Pipeline run failed", err, "symbol", cfg.Symbol)
			os.Exit(1)
		}
		return
	}

	if err := app.Pipeline.StartScheduled(cfg.UpdateFrequency); err != nil {
		logger.ErrorWithErr(ctx, "Failed to start scheduled runs", err)
		os.Exit(1)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down")
	app.Pipeline.StopScheduled()
}
