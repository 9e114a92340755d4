package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/api/binance"
	"github.com/mkrv/govimpact/internal/config"
	"github.com/mkrv/govimpact/internal/dataset"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting price data collection")

	start, err := time.Parse("2006-01-02", cfg.PriceStartDate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.PriceStartDate).Msg("Invalid PRICE_START_DATE")
	}
	end := time.Now().UTC()
	if cfg.PriceEndDate != "" {
		if end, err = time.Parse("2006-01-02", cfg.PriceEndDate); err != nil {
			log.Fatal().Err(err).Str("value", cfg.PriceEndDate).Msg("Invalid PRICE_END_DATE")
		}
	}

	client := binance.NewClient(binance.ClientOptions{
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: 5,
	})

	// Deterministic fetch order makes reruns comparable in the logs.
	assets := make([]string, 0, len(binance.Symbols))
	for asset := range binance.Symbols {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	fetched, failed := 0, 0
	for _, asset := range assets {
		if ctx.Err() != nil {
			log.Warn().Msg("Cancelled, stopping fetch")
			break
		}
		symbol := binance.Symbols[asset]

		series, err := client.GetDailyCloses(ctx, symbol, start.UTC(), end)
		if err != nil {
			log.Error().Err(err).Str("asset", asset).Str("symbol", symbol).Msg("Failed to fetch prices")
			failed++
			continue
		}
		if len(series) == 0 {
			log.Warn().Str("asset", asset).Str("symbol", symbol).Msg("No price data available")
			continue
		}

		path := filepath.Join(cfg.PriceDataDir, dataset.PriceFileName(asset))
		if err := dataset.WriteSeries(path, series); err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to write price file")
			failed++
			continue
		}
		log.Info().Str("asset", asset).Int("samples", len(series)).Str("file", path).Msg("Price data saved")
		fetched++
	}

	log.Info().Int("fetched", fetched).Int("failed", failed).Msg("Price data collection completed")
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
