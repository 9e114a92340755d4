package impact

import (
	"sort"

	"github.com/mkrv/govimpact/internal/model"
)

// MinProtocolSamples is the smallest per-protocol sample count shown in the
// batch summary. Protocols below it stay in the output records, they are only
// left out of the displayed aggregate.
const MinProtocolSamples = 5

// ProtocolStats summarizes the measured impact for one protocol.
type ProtocolStats struct {
	Protocol       string
	Count          int
	MeanIncrease   float64
	MedianIncrease float64
	MeanGain       float64
	MeanLoss       float64
	MeanDaysToMax  float64
}

// Summary holds the aggregate view of a batch, computed only over records
// where the horizon price resolved (PercentIncrease present).
type Summary struct {
	Records        int
	MeanIncrease   float64
	MedianIncrease float64
	MeanGain       float64
	MeanLoss       float64
	MeanDaysToMax  float64
	MeanDaysToMin  float64
	PositiveCount  int
	NegativeCount  int
	// ByProtocol lists protocols with at least minSamples records, best mean
	// increase first.
	ByProtocol []ProtocolStats
}

// Summarize computes batch aggregates. minSamples <= 0 falls back to
// MinProtocolSamples.
func Summarize(records []model.ImpactRecord, minSamples int) Summary {
	if minSamples <= 0 {
		minSamples = MinProtocolSamples
	}

	var complete []model.ImpactRecord
	for _, r := range records {
		if r.PercentIncrease != nil {
			complete = append(complete, r)
		}
	}

	s := Summary{Records: len(complete)}
	if len(complete) == 0 {
		return s
	}

	var increases, gains, losses, daysMax, daysMin []float64
	byProtocol := make(map[string][]model.ImpactRecord)
	for _, r := range complete {
		inc := *r.PercentIncrease
		increases = append(increases, inc)
		gains = append(gains, r.PercentGain)
		losses = append(losses, r.PercentLoss)
		daysMax = append(daysMax, r.DaysToMax)
		daysMin = append(daysMin, r.DaysToMin)
		if inc > 0 {
			s.PositiveCount++
		} else if inc < 0 {
			s.NegativeCount++
		}
		byProtocol[r.Protocol] = append(byProtocol[r.Protocol], r)
	}

	s.MeanIncrease = mean(increases)
	s.MedianIncrease = median(increases)
	s.MeanGain = mean(gains)
	s.MeanLoss = mean(losses)
	s.MeanDaysToMax = mean(daysMax)
	s.MeanDaysToMin = mean(daysMin)

	for protocol, recs := range byProtocol {
		if len(recs) < minSamples {
			continue
		}
		var incs, pgains, plosses, pdays []float64
		for _, r := range recs {
			incs = append(incs, *r.PercentIncrease)
			pgains = append(pgains, r.PercentGain)
			plosses = append(plosses, r.PercentLoss)
			pdays = append(pdays, r.DaysToMax)
		}
		s.ByProtocol = append(s.ByProtocol, ProtocolStats{
			Protocol:       protocol,
			Count:          len(recs),
			MeanIncrease:   mean(incs),
			MedianIncrease: median(incs),
			MeanGain:       mean(pgains),
			MeanLoss:       mean(plosses),
			MeanDaysToMax:  mean(pdays),
		})
	}
	sort.Slice(s.ByProtocol, func(i, j int) bool {
		if s.ByProtocol[i].MeanIncrease != s.ByProtocol[j].MeanIncrease {
			return s.ByProtocol[i].MeanIncrease > s.ByProtocol[j].MeanIncrease
		}
		return s.ByProtocol[i].Protocol < s.ByProtocol[j].Protocol
	})

	return s
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
