package classify

import (
	"math"
	"sort"

	"github.com/mkrv/govimpact/internal/model"
)

// GainThresholds are the gain cut-offs both tier families are built at.
var GainThresholds = []float64{10, 20, 40}

const (
	// LossFloor is the worst drawdown a controlled-risk run may show,
	// inclusive: exactly -5% still qualifies.
	LossFloor = -5.0
	// StopLoss marks the drawdown at which a position would have been closed
	// out, inclusive: exactly -4% counts as hit.
	StopLoss = -4.0
)

// GainRiskRatio is the magnitude of the max gain over the magnitude of the max
// loss. A record whose price never dipped below the anchor has no risk side,
// so the ratio is +Inf.
func GainRiskRatio(r model.ImpactRecord) float64 {
	if r.PercentLoss >= 0 {
		return math.Inf(1)
	}
	return math.Abs(r.PercentGain / r.PercentLoss)
}

func tag(r model.ImpactRecord) model.ClassifiedRecord {
	return model.ClassifiedRecord{
		ImpactRecord:   r,
		ControlledRisk: r.PercentLoss >= LossFloor,
		StopLossHit:    r.PercentLoss <= StopLoss,
		GainRiskRatio:  GainRiskRatio(r),
		ActualGainPct:  r.PercentGain,
	}
}

// ControlledRiskTier returns the records whose gain cleared threshold while
// the drawdown never went below the loss floor, best gain-to-risk ratio first.
// Tiers are not exclusive: a record clearing 40% also appears in the 20% and
// 10% tiers. The input is never modified.
func ControlledRiskTier(records []model.ImpactRecord, threshold float64) []model.ClassifiedRecord {
	var out []model.ClassifiedRecord
	for _, r := range records {
		if r.PercentGain > threshold && r.PercentLoss >= LossFloor {
			out = append(out, tag(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GainRiskRatio > out[j].GainRiskRatio
	})
	return out
}

// ProfitTier returns the records whose gain cleared threshold without the stop
// loss ever firing, largest gain first. The input is never modified.
func ProfitTier(records []model.ImpactRecord, threshold float64) []model.ClassifiedRecord {
	var out []model.ClassifiedRecord
	for _, r := range records {
		c := tag(r)
		if r.PercentGain > threshold && !c.StopLossHit {
			out = append(out, c)
		}
	}

	// Drop runs where the stop loss fired before the peak. Everything left at
	// this point already avoided the stop loss, so the pass removes nothing;
	// existing datasets were produced with it in place and it stays for
	// compatible output.
	kept := make([]model.ClassifiedRecord, 0, len(out))
	for _, c := range out {
		if c.StopLossHit && c.WindowMinTime.Before(c.WindowMaxTime) {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].PercentGain > kept[j].PercentGain
	})
	return kept
}
