package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/api/deepseek"
	"github.com/mkrv/govimpact/internal/config"
	"github.com/mkrv/govimpact/internal/dataset"
	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/sentiment"
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

	if cfg.AgentKey == "" {
		log.Fatal().Msg("AGENT_KEY is required for sentiment scoring")
	}

	tierPath := filepath.Join(cfg.OutputDir, dataset.TierFileName("controlled_risk", 10))
	records, err := dataset.ReadTier(tierPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", tierPath).Msg("Failed to read tier file")
	}
	log.Info().Int("records", len(records)).Str("file", tierPath).Msg("Loaded tier records")

	client := deepseek.NewClient(cfg.AgentEndpoint, cfg.AgentKey, cfg.AgentModel)
	analyzer := sentiment.NewAnalyzer(client)

	scored := make([]model.ScoredRecord, 0, len(records))
	unscored := 0
	for i, r := range records {
		if ctx.Err() != nil {
			log.Warn().Int("done", i).Msg("Cancelled, stopping scoring")
			break
		}

		score, err := analyzer.Analyze(ctx, r.Title, r.Description)
		if err != nil {
			if !errors.Is(err, sentiment.ErrNoScore) {
				break
			}
			unscored++
			log.Warn().Str("protocol", r.Protocol).Str("post_id", r.PostID).Msg("Post kept with neutral sentiment")
		}
		scored = append(scored, model.ScoredRecord{ClassifiedRecord: r, Sentiment: score})
		log.Debug().
			Str("protocol", r.Protocol).
			Str("label", score.Label).
			Float64("score", score.Score).
			Msg("Post scored")
	}

	scoredPath := filepath.Join(cfg.OutputDir, "controlled_risk_posts_10pct_with_sentiment.csv")
	if err := dataset.WriteScoredTier(scoredPath, scored); err != nil {
		log.Fatal().Err(err).Msg("Failed to write scored tier")
	}
	log.Info().Int("records", len(scored)).Int("unscored", unscored).Str("file", scoredPath).Msg("Sentiment scores saved")

	high := sentiment.FilterHighSentiment(scored, sentiment.HighSentimentThreshold)
	highPath := filepath.Join(cfg.OutputDir, "high_sentiment_posts.csv")
	if err := dataset.WriteHighSentiment(highPath, high); err != nil {
		log.Fatal().Err(err).Msg("Failed to write high-sentiment posts")
	}
	log.Info().Int("records", len(high)).Str("file", highPath).Msg("High-sentiment posts saved")

	logCorrelation(scored)
	printTopCombined(high, 5)
}

func logCorrelation(records []model.ScoredRecord) {
	if len(records) < 2 {
		return
	}
	sentiments := make([]float64, len(records))
	gains := make([]float64, len(records))
	for i, r := range records {
		sentiments[i] = r.Sentiment.Normalized
		gains[i] = r.PercentGain
	}
	corr := sentiment.Correlation(sentiments, gains)
	log.Info().Float64("correlation", corr).Msg("Sentiment vs. max gain correlation")
}

func printTopCombined(records []model.ScoredRecord, limit int) {
	if len(records) == 0 {
		return
	}
	ranked := append([]model.ScoredRecord{}, records...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	fmt.Printf("\nTop %d high-sentiment posts by combined score:\n", len(ranked))
	for i, r := range ranked {
		fmt.Printf("%d. [%s] %s\n", i+1, r.Protocol, r.Title)
		fmt.Printf("   Sentiment: %s %.2f | Gain: %.2f%% | Combined: %.3f\n",
			r.Sentiment.Label, r.Sentiment.Score, r.PercentGain, r.CombinedScore)
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
