package classify

import (
	"math"
	"testing"
	"time"

	"github.com/mkrv/govimpact/internal/model"
)

var postTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func record(protocol string, gain, loss float64) model.ImpactRecord {
	return model.ImpactRecord{
		Post:           model.Post{Protocol: protocol, PostID: protocol + "-1", Timestamp: postTime},
		AnchorPrice:    100,
		WindowMaxPrice: 100 + gain,
		WindowMaxTime:  postTime.Add(2 * 24 * time.Hour),
		WindowMinPrice: 100 + loss,
		WindowMinTime:  postTime.Add(4 * 24 * time.Hour),
		PercentGain:    gain,
		PercentLoss:    loss,
		DaysToMax:      2,
		DaysToMin:      4,
	}
}

func TestControlledRiskTierScenario(t *testing.T) {
	// Gain 30 with a worst drawdown of exactly -5 stays inside the loss floor.
	records := []model.ImpactRecord{record("aave", 30, -5)}

	tier := ControlledRiskTier(records, 10)
	if len(tier) != 1 {
		t.Fatalf("ControlledRiskTier(10) = %d records, want 1", len(tier))
	}
	got := tier[0]
	if !got.ControlledRisk {
		t.Error("ControlledRisk = false, want true")
	}
	if got.GainRiskRatio != 6 {
		t.Errorf("GainRiskRatio = %v, want 6", got.GainRiskRatio)
	}
}

func TestControlledRiskTierLossFloor(t *testing.T) {
	records := []model.ImpactRecord{
		record("a", 30, -5),   // exactly at the floor: in
		record("b", 30, -5.1), // past the floor: out
		record("c", 10, -1),   // gain not above threshold: out
	}
	tier := ControlledRiskTier(records, 10)
	if len(tier) != 1 || tier[0].Protocol != "a" {
		t.Fatalf("ControlledRiskTier(10) = %+v, want only protocol a", tier)
	}
}

func TestTierMonotonicity(t *testing.T) {
	records := []model.ImpactRecord{
		record("a", 45, -2),
		record("b", 25, -1),
		record("c", 12, 0),
	}

	sizes := map[float64]int{}
	for _, g := range GainThresholds {
		sizes[g] = len(ControlledRiskTier(records, g))
	}
	if sizes[10] < sizes[20] || sizes[20] < sizes[40] {
		t.Errorf("tier sizes not monotone: %v", sizes)
	}

	// The 45%-gain record must appear in every tier.
	for _, g := range GainThresholds {
		found := false
		for _, r := range ControlledRiskTier(records, g) {
			if r.Protocol == "a" {
				found = true
			}
		}
		if !found {
			t.Errorf("record with gain 45 missing from %v%% tier", g)
		}
	}
}

func TestGainRiskRatio(t *testing.T) {
	tests := []struct {
		name string
		gain float64
		loss float64
		want float64
	}{
		{"no drawdown is infinite", 20, 0, math.Inf(1)},
		{"positive min is infinite", 20, 3, math.Inf(1)},
		{"plain ratio", 30, -5, 6},
		{"ratio is absolute", 10, -20, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GainRiskRatio(record("x", tt.gain, tt.loss))
			if got != tt.want {
				t.Errorf("GainRiskRatio(gain=%v, loss=%v) = %v, want %v", tt.gain, tt.loss, got, tt.want)
			}
			if got < 0 {
				t.Error("GainRiskRatio is negative")
			}
		})
	}
}

func TestControlledRiskTierOrdering(t *testing.T) {
	records := []model.ImpactRecord{
		record("low", 12, -4),   // ratio 3
		record("inf", 15, 1),    // ratio +Inf
		record("high", 40, -2),  // ratio 20
	}
	tier := ControlledRiskTier(records, 10)
	if len(tier) != 3 {
		t.Fatalf("tier size = %d, want 3", len(tier))
	}
	wantOrder := []string{"inf", "high", "low"}
	for i, want := range wantOrder {
		if tier[i].Protocol != want {
			t.Errorf("tier[%d] = %s, want %s (descending ratio, infinities first)", i, tier[i].Protocol, want)
		}
	}
}

func TestProfitTierStopLoss(t *testing.T) {
	records := []model.ImpactRecord{
		record("hit", 30, -5),        // stop loss fired: out of every profit tier
		record("edge", 30, -4),       // exactly -4 counts as hit: out
		record("clean", 30, -3.9),    // in
		record("smallgain", 8, -1),   // gain below threshold: out
	}

	tier := ProfitTier(records, 10)
	if len(tier) != 1 || tier[0].Protocol != "clean" {
		t.Fatalf("ProfitTier(10) = %+v, want only clean", tier)
	}
	if tier[0].StopLossHit {
		t.Error("StopLossHit = true for surviving record")
	}
	if tier[0].ActualGainPct != 30 {
		t.Errorf("ActualGainPct = %v, want 30", tier[0].ActualGainPct)
	}
}

func TestProfitTierOrdering(t *testing.T) {
	records := []model.ImpactRecord{
		record("mid", 20, -1),
		record("top", 50, -2),
		record("low", 11, 0),
	}
	tier := ProfitTier(records, 10)
	wantOrder := []string{"top", "mid", "low"}
	if len(tier) != 3 {
		t.Fatalf("tier size = %d, want 3", len(tier))
	}
	for i, want := range wantOrder {
		if tier[i].Protocol != want {
			t.Errorf("tier[%d] = %s, want %s (descending gain)", i, tier[i].Protocol, want)
		}
	}
}

func TestSummarizeTier(t *testing.T) {
	records := []model.ClassifiedRecord{}
	for _, gain := range []float64{12, 20, 40} {
		r := record("aave", gain, -2)
		records = append(records, model.ClassifiedRecord{
			ImpactRecord:  r,
			GainRiskRatio: GainRiskRatio(r),
			ActualGainPct: gain,
		})
	}
	// Single entry for uniswap, below the minimum of 3.
	r := record("uniswap", 15, 0)
	records = append(records, model.ClassifiedRecord{ImpactRecord: r, GainRiskRatio: GainRiskRatio(r)})

	stats := SummarizeTier(records, 0)
	if len(stats) != 1 || stats[0].Protocol != "aave" {
		t.Fatalf("SummarizeTier() = %+v, want only aave", stats)
	}
	s := stats[0]
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.MeanGain != 24 {
		t.Errorf("MeanGain = %v, want 24", s.MeanGain)
	}
	if s.MaxGain != 40 {
		t.Errorf("MaxGain = %v, want 40", s.MaxGain)
	}
}

func TestSummarizeTierAllInfiniteRatios(t *testing.T) {
	var records []model.ClassifiedRecord
	for i := 0; i < 3; i++ {
		r := record("aave", 20, 1)
		records = append(records, model.ClassifiedRecord{ImpactRecord: r, GainRiskRatio: GainRiskRatio(r)})
	}
	stats := SummarizeTier(records, 3)
	if len(stats) != 1 {
		t.Fatalf("SummarizeTier() = %+v, want one protocol", stats)
	}
	if !math.IsInf(stats[0].MeanGainRiskRatio, 1) {
		t.Errorf("MeanGainRiskRatio = %v, want +Inf when every run had no drawdown", stats[0].MeanGainRiskRatio)
	}
}
