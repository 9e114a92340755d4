package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/model"
)

// ErrNoScore is returned when the model never produced a parsable score
// within the allowed attempts.
var ErrNoScore = errors.New("no sentiment score obtained")

// Completer is the slice of the chat API the analyzer needs.
type Completer interface {
	ScoreSentiment(ctx context.Context, text string) (string, error)
}

// Analyzer scores posts through a chat model, retrying when the reply carries
// no parsable JSON object.
type Analyzer struct {
	client      Completer
	maxAttempts int
	retryDelay  time.Duration
	logger      zerolog.Logger
}

// NewAnalyzer creates an Analyzer with 3 attempts and a 1s delay between them.
func NewAnalyzer(client Completer) *Analyzer {
	return &Analyzer{
		client:      client,
		maxAttempts: 3,
		retryDelay:  time.Second,
		logger:      log.With().Str("component", "sentiment_analyzer").Logger(),
	}
}

// Analyze scores one post. Title and description go in together for context.
// On failure the returned score is the neutral 0.5 along with ErrNoScore, so
// callers can keep the row and still tell scored from unscored.
func (a *Analyzer) Analyze(ctx context.Context, title, description string) (model.SentimentScore, error) {
	text := fmt.Sprintf("Title: %s\n\nDescription: %s", title, description)

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		content, err := a.client.ScoreSentiment(ctx, text)
		if err != nil {
			a.logger.Warn().Err(err).Int("attempt", attempt).Msg("Sentiment request failed")
		} else if score, ok := ParseScore(content); ok {
			return score, nil
		}

		if attempt == a.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return neutralScore(), ctx.Err()
		case <-time.After(a.retryDelay):
		}
	}

	return neutralScore(), ErrNoScore
}

var jsonPattern = regexp.MustCompile(`\{[^{}]*\}`)

// ParseScore pulls the {"positive": x} / {'negative': x} object out of a
// model reply. Models occasionally wrap the object in prose or use single
// quotes; both are tolerated.
func ParseScore(content string) (model.SentimentScore, bool) {
	match := jsonPattern.FindString(content)
	if match == "" {
		return model.SentimentScore{}, false
	}

	fixed := strings.ReplaceAll(match, "'", `"`)
	var obj map[string]float64
	if err := json.Unmarshal([]byte(fixed), &obj); err != nil {
		return model.SentimentScore{}, false
	}

	for _, label := range []string{"positive", "negative"} {
		if v, ok := obj[label]; ok {
			return newScore(label, v), true
		}
	}
	return model.SentimentScore{}, false
}

func newScore(label string, value float64) model.SentimentScore {
	s := model.SentimentScore{Label: label, Score: value, Normalized: 0.5}
	switch label {
	case "positive":
		s.Normalized = 0.5 + value*0.5
	case "negative":
		s.Normalized = 0.5 - value*0.5
	}
	return s
}

func neutralScore() model.SentimentScore {
	return model.SentimentScore{Normalized: 0.5}
}
