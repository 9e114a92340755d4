package impact

import (
	"testing"
	"time"

	"github.com/mkrv/govimpact/internal/model"
)

func impactRecord(protocol string, increase *float64, gain, loss float64) model.ImpactRecord {
	return model.ImpactRecord{
		Post:            model.Post{Protocol: protocol, Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		AnchorPrice:     100,
		PercentIncrease: increase,
		PercentGain:     gain,
		PercentLoss:     loss,
		DaysToMax:       2,
		DaysToMin:       4,
	}
}

func pct(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	records := []model.ImpactRecord{
		impactRecord("aave", pct(10), 30, -5),
		impactRecord("aave", pct(-4), 2, -8),
		impactRecord("uniswap", pct(6), 12, -1),
		impactRecord("uniswap", nil, 50, -2), // horizon unresolved, excluded
	}

	s := Summarize(records, 2)

	if s.Records != 3 {
		t.Fatalf("Records = %d, want 3 (nil increase excluded)", s.Records)
	}
	if want := 4.0; s.MeanIncrease != want {
		t.Errorf("MeanIncrease = %v, want %v", s.MeanIncrease, want)
	}
	if want := 6.0; s.MedianIncrease != want {
		t.Errorf("MedianIncrease = %v, want %v", s.MedianIncrease, want)
	}
	if s.PositiveCount != 2 || s.NegativeCount != 1 {
		t.Errorf("positive/negative = %d/%d, want 2/1", s.PositiveCount, s.NegativeCount)
	}

	// uniswap has only one complete record, below the minimum of 2.
	if len(s.ByProtocol) != 1 || s.ByProtocol[0].Protocol != "aave" {
		t.Fatalf("ByProtocol = %+v, want only aave", s.ByProtocol)
	}
	if s.ByProtocol[0].Count != 2 {
		t.Errorf("aave count = %d, want 2", s.ByProtocol[0].Count)
	}
	if want := 3.0; s.ByProtocol[0].MeanIncrease != want {
		t.Errorf("aave mean increase = %v, want %v", s.ByProtocol[0].MeanIncrease, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	if s.Records != 0 || len(s.ByProtocol) != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
