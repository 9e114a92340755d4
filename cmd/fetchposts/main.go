package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/clean"
	"github.com/mkrv/govimpact/internal/config"
	"github.com/mkrv/govimpact/internal/dataset"
	"github.com/mkrv/govimpact/internal/store"
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
	log.Info().Msg("Starting post export")

	db, err := store.New(store.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to post store")
	}
	defer db.Close()

	posts, err := db.ListPosts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list posts")
	}
	log.Info().Int("posts", len(posts)).Msg("Loaded posts from store")

	for i := range posts {
		posts[i].Description = clean.HTML(posts[i].Description)
	}

	from, err := time.Parse("2006-01-02", cfg.PostsFrom)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.PostsFrom).Msg("Invalid POSTS_FROM date")
	}
	to, err := time.Parse("2006-01-02", cfg.PostsTo)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.PostsTo).Msg("Invalid POSTS_TO date")
	}

	filtered := dataset.FilterByDateRange(posts, from.UTC(), to.UTC())
	log.Info().
		Int("kept", len(filtered)).
		Int("dropped", len(posts)-len(filtered)).
		Str("from", cfg.PostsFrom).
		Str("to", cfg.PostsTo).
		Msg("Filtered posts by date range")

	if err := dataset.WritePosts(cfg.PostsFile, filtered); err != nil {
		log.Fatal().Err(err).Str("file", cfg.PostsFile).Msg("Failed to write posts")
	}
	log.Info().Str("file", cfg.PostsFile).Msg("Posts written")
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
