package sentiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mkrv/govimpact/internal/model"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantOK   bool
		wantLbl  string
		wantVal  float64
		wantNorm float64
	}{
		{
			name:     "plain positive",
			content:  `{"positive": 0.9}`,
			wantOK:   true,
			wantLbl:  "positive",
			wantVal:  0.9,
			wantNorm: 0.95,
		},
		{
			name:     "single quotes",
			content:  `{'negative': 0.6}`,
			wantOK:   true,
			wantLbl:  "negative",
			wantVal:  0.6,
			wantNorm: 0.2,
		},
		{
			name:     "object wrapped in prose",
			content:  "Here is my assessment:\n{\"positive\": 0.4}\nHope that helps.",
			wantOK:   true,
			wantLbl:  "positive",
			wantVal:  0.4,
			wantNorm: 0.7,
		},
		{
			name:    "no json at all",
			content: "The proposal looks bullish.",
			wantOK:  false,
		},
		{
			name:    "unknown label",
			content: `{"neutral": 0.5}`,
			wantOK:  false,
		},
		{
			name:    "malformed json",
			content: `{"positive": }`,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ParseScore() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Label != tt.wantLbl || got.Score != tt.wantVal {
				t.Errorf("ParseScore() = {%s %v}, want {%s %v}", got.Label, got.Score, tt.wantLbl, tt.wantVal)
			}
			if math.Abs(got.Normalized-tt.wantNorm) > 1e-9 {
				t.Errorf("Normalized = %v, want %v", got.Normalized, tt.wantNorm)
			}
		})
	}
}

type stubCompleter struct {
	replies []string
	errs    []error
	calls   int
}

func (s *stubCompleter) ScoreSentiment(_ context.Context, _ string) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var reply string
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return reply, err
}

func TestAnalyzeRetriesUntilParsable(t *testing.T) {
	stub := &stubCompleter{
		replies: []string{"no json here", `{"positive": 0.7}`},
	}
	a := NewAnalyzer(stub)
	a.retryDelay = 0

	score, err := a.Analyze(context.Background(), "Title", "Body")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2", stub.calls)
	}
	if score.Label != "positive" || score.Score != 0.7 {
		t.Errorf("score = %+v, want positive 0.7", score)
	}
}

func TestAnalyzeGivesUpNeutral(t *testing.T) {
	stub := &stubCompleter{
		replies: []string{"nope", "still nope", "nothing"},
		errs:    []error{nil, errors.New("boom"), nil},
	}
	a := NewAnalyzer(stub)
	a.retryDelay = 0

	score, err := a.Analyze(context.Background(), "Title", "Body")
	if !errors.Is(err, ErrNoScore) {
		t.Fatalf("Analyze() error = %v, want ErrNoScore", err)
	}
	if stub.calls != 3 {
		t.Errorf("calls = %d, want 3", stub.calls)
	}
	if score.Normalized != 0.5 || score.Label != "" {
		t.Errorf("score = %+v, want neutral fallback", score)
	}
}

func TestFilterHighSentiment(t *testing.T) {
	mk := func(score, gain float64) model.ScoredRecord {
		return model.ScoredRecord{
			ClassifiedRecord: model.ClassifiedRecord{
				ImpactRecord: model.ImpactRecord{PercentGain: gain},
			},
			Sentiment: model.SentimentScore{Label: "positive", Score: score},
		}
	}

	records := []model.ScoredRecord{
		mk(0.95, 40),
		mk(0.8, 25), // exactly at threshold: excluded (strict >)
		mk(0.85, 10),
		mk(0.2, 60),
	}

	got := FilterHighSentiment(records, HighSentimentThreshold)
	if len(got) != 2 {
		t.Fatalf("FilterHighSentiment() kept %d, want 2", len(got))
	}

	if got[0].GainProduct != 0.95*40 {
		t.Errorf("GainProduct = %v, want %v", got[0].GainProduct, 0.95*40)
	}
	// Two symmetric entries: z-scores must be equal magnitude, opposite sign.
	if math.Abs(got[0].SentimentZ+got[1].SentimentZ) > 1e-9 {
		t.Errorf("sentiment z-scores not symmetric: %v, %v", got[0].SentimentZ, got[1].SentimentZ)
	}
	if got[0].CombinedScore <= got[1].CombinedScore {
		t.Errorf("combined score of the stronger record should rank higher: %v <= %v",
			got[0].CombinedScore, got[1].CombinedScore)
	}
}

func TestFilterHighSentimentEmpty(t *testing.T) {
	if got := FilterHighSentiment(nil, HighSentimentThreshold); len(got) != 0 {
		t.Errorf("FilterHighSentiment(nil) = %v, want empty", got)
	}
}
