package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/config"
	"github.com/mkrv/govimpact/internal/dataset"
	"github.com/mkrv/govimpact/internal/impact"
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
	log.Info().Msg("Starting impact calculator")

	posts, report, err := dataset.ReadPosts(cfg.PostsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PostsFile).Msg("Failed to load posts")
	}
	log.Info().
		Int("posts", len(posts)).
		Int("malformed_dropped", report.Malformed).
		Str("file", cfg.PostsFile).
		Msg("Loaded posts")

	var protocols []string
	seen := map[string]bool{}
	for _, p := range posts {
		if !seen[p.Protocol] {
			seen[p.Protocol] = true
			protocols = append(protocols, p.Protocol)
		}
	}

	lookup, err := dataset.LoadSeriesDir(cfg.PriceDataDir, protocols)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.PriceDataDir).Msg("Failed to load price data")
	}
	log.Info().Int("series", len(lookup)).Int("protocols", len(protocols)).Msg("Loaded price series")

	calc := impact.NewCalculator(
		time.Duration(cfg.HorizonDays)*24*time.Hour,
		time.Duration(cfg.ToleranceHours)*time.Hour,
	)
	result := calc.ComputeBatch(ctx, posts, lookup, cfg.Workers)

	for reason, count := range result.Skips {
		log.Info().Str("reason", string(reason)).Int("count", count).Msg("Posts skipped")
	}

	if err := dataset.WriteImpactRecords(cfg.ImpactFile, result.Records); err != nil {
		log.Fatal().Err(err).Str("file", cfg.ImpactFile).Msg("Failed to write impact records")
	}
	log.Info().Int("records", len(result.Records)).Str("file", cfg.ImpactFile).Msg("Impact records written")

	printSummary(impact.Summarize(result.Records, impact.MinProtocolSamples))
}

func printSummary(s impact.Summary) {
	if s.Records == 0 {
		log.Warn().Msg("No records with a resolved horizon price, skipping summary")
		return
	}

	log.Info().
		Int("records", s.Records).
		Float64("mean_increase_pct", s.MeanIncrease).
		Float64("median_increase_pct", s.MedianIncrease).
		Float64("mean_max_gain_pct", s.MeanGain).
		Float64("mean_min_loss_pct", s.MeanLoss).
		Float64("mean_days_to_max", s.MeanDaysToMax).
		Float64("mean_days_to_min", s.MeanDaysToMin).
		Int("positive_impact", s.PositiveCount).
		Int("negative_impact", s.NegativeCount).
		Msg("Batch summary")

	for _, p := range s.ByProtocol {
		log.Info().
			Str("protocol", p.Protocol).
			Int("posts", p.Count).
			Float64("mean_increase_pct", p.MeanIncrease).
			Float64("median_increase_pct", p.MedianIncrease).
			Msg("Protocol summary")
	}
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
