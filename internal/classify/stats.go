package classify

import (
	"math"
	"sort"

	"github.com/mkrv/govimpact/internal/model"
)

// MinTierSamples is the smallest per-protocol sample count shown in a tier
// summary. Records below it stay in the tier output itself.
const MinTierSamples = 3

// TierStats summarizes one protocol's entries inside a tier.
type TierStats struct {
	Protocol          string
	Count             int
	MeanGain          float64
	MaxGain           float64
	MeanLoss          float64
	MeanDaysToMax     float64
	MeanGainRiskRatio float64
}

// SummarizeTier aggregates a tier per protocol, most entries first. Protocols
// with fewer than minSamples entries are omitted. Infinite gain-risk ratios
// are left out of the ratio mean so one zero-drawdown run does not blow it up.
func SummarizeTier(records []model.ClassifiedRecord, minSamples int) []TierStats {
	if minSamples <= 0 {
		minSamples = MinTierSamples
	}

	byProtocol := make(map[string][]model.ClassifiedRecord)
	for _, r := range records {
		byProtocol[r.Protocol] = append(byProtocol[r.Protocol], r)
	}

	var out []TierStats
	for protocol, recs := range byProtocol {
		if len(recs) < minSamples {
			continue
		}
		stats := TierStats{Protocol: protocol, Count: len(recs), MaxGain: math.Inf(-1)}
		var gainSum, lossSum, daysSum, ratioSum float64
		finiteRatios := 0
		for _, r := range recs {
			gainSum += r.PercentGain
			lossSum += r.PercentLoss
			daysSum += r.DaysToMax
			if r.PercentGain > stats.MaxGain {
				stats.MaxGain = r.PercentGain
			}
			if !math.IsInf(r.GainRiskRatio, 1) {
				ratioSum += r.GainRiskRatio
				finiteRatios++
			}
		}
		n := float64(len(recs))
		stats.MeanGain = gainSum / n
		stats.MeanLoss = lossSum / n
		stats.MeanDaysToMax = daysSum / n
		if finiteRatios > 0 {
			stats.MeanGainRiskRatio = ratioSum / float64(finiteRatios)
		} else {
			stats.MeanGainRiskRatio = math.Inf(1)
		}
		out = append(out, stats)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Protocol < out[j].Protocol
	})
	return out
}
