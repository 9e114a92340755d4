package main

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/classify"
	"github.com/mkrv/govimpact/internal/config"
	"github.com/mkrv/govimpact/internal/dataset"
	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/notify"
)

const topDisplayCount = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting classifier")

	records, err := dataset.ReadImpactRecords(cfg.ImpactFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ImpactFile).Msg("Failed to load impact records")
	}
	log.Info().Int("records", len(records)).Msg("Loaded impact records")

	var notifyTier []model.ClassifiedRecord

	for _, threshold := range classify.GainThresholds {
		controlled := classify.ControlledRiskTier(records, threshold)
		path := filepath.Join(cfg.OutputDir, dataset.TierFileName("controlled_risk", threshold))
		if err := dataset.WriteControlledRiskTier(path, controlled); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to write controlled-risk tier")
		}
		log.Info().
			Float64("threshold_pct", threshold).
			Int("posts", len(controlled)).
			Str("file", path).
			Msg("Controlled-risk tier written")
		printTopControlled(controlled, threshold)

		if threshold == 10 {
			notifyTier = controlled
			printTierStats(classify.SummarizeTier(controlled, classify.MinTierSamples))
		}

		profit := classify.ProfitTier(records, threshold)
		path = filepath.Join(cfg.OutputDir, dataset.TierFileName("profitable", threshold))
		if err := dataset.WriteProfitTier(path, profit); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to write profit tier")
		}
		log.Info().
			Float64("threshold_pct", threshold).
			Int("posts", len(profit)).
			Str("file", path).
			Msg("Profit tier written")
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to init Telegram notifier")
			return
		}
		if err := notifier.SendTopControlledRisk(notifyTier, 10, cfg.NotifyTopCount); err != nil {
			log.Error().Err(err).Msg("Failed to send Telegram notification")
		}
	}
}

func printTopControlled(tier []model.ClassifiedRecord, threshold float64) {
	n := topDisplayCount
	if n > len(tier) {
		n = len(tier)
	}
	for _, r := range tier[:n] {
		ev := log.Info().
			Str("protocol", r.Protocol).
			Str("title", r.Title).
			Float64("gain_pct", r.PercentGain).
			Float64("min_loss_pct", r.PercentLoss).
			Float64("threshold_pct", threshold)
		if math.IsInf(r.GainRiskRatio, 1) {
			ev = ev.Str("gain_risk_ratio", "inf")
		} else {
			ev = ev.Float64("gain_risk_ratio", r.GainRiskRatio)
		}
		ev.Msg("Top controlled-risk post")
	}
}

func printTierStats(stats []classify.TierStats) {
	for _, s := range stats {
		log.Info().
			Str("protocol", s.Protocol).
			Int("posts", s.Count).
			Float64("mean_gain_pct", s.MeanGain).
			Float64("mean_min_loss_pct", s.MeanLoss).
			Float64("mean_gain_risk_ratio", s.MeanGainRiskRatio).
			Msg("Tier protocol stats")
	}
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
