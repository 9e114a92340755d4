package pricing

import (
	"sort"
	"time"

	"github.com/mkrv/govimpact/internal/model"
)

// DefaultTolerance bounds how far a matched sample may sit from the requested
// time. Daily closes plus weekend gaps make two days the practical limit.
const DefaultTolerance = 48 * time.Hour

// Series is the full price history for one asset, ascending by timestamp.
type Series []model.PricePoint

// Sort orders the series ascending by timestamp. Input files are assumed
// sorted but not required to be.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Nearest returns the sample closest to target. Ties go to the sample that
// appears first in the series, so results are stable across runs. A sample
// farther than tolerance from target does not count; a distance of exactly
// tolerance still matches.
func Nearest(series Series, target time.Time, tolerance time.Duration) (model.PricePoint, bool) {
	if len(series) == 0 {
		return model.PricePoint{}, false
	}

	best := series[0]
	bestDiff := absDuration(series[0].Timestamp.Sub(target))
	for _, p := range series[1:] {
		if d := absDuration(p.Timestamp.Sub(target)); d < bestDiff {
			best = p
			bestDiff = d
		}
	}

	if bestDiff > tolerance {
		return model.PricePoint{}, false
	}
	return best, true
}

// Window returns the samples inside [start, end], both endpoints included, in
// the series' own order. An empty result is a normal outcome, not an error.
func Window(series Series, start, end time.Time) Series {
	var out Series
	for _, p := range series {
		if !p.Timestamp.Before(start) && !p.Timestamp.After(end) {
			out = append(out, p)
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
