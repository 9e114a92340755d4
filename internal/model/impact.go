package model

import "time"

// ImpactRecord holds the price reaction derived for one post: the price matched
// at the post time, the price matched at the horizon date, and the extrema of
// the forward window. HorizonPrice and PercentIncrease are nil when no sample
// matched near the horizon date. A record is never mutated after creation.
type ImpactRecord struct {
	Post

	AnchorPrice     float64   `json:"anchor_price"`
	HorizonPrice    *float64  `json:"horizon_price,omitempty"`
	PercentIncrease *float64  `json:"percent_increase,omitempty"`
	WindowMaxPrice  float64   `json:"max_price"`
	WindowMaxTime   time.Time `json:"max_price_date"`
	WindowMinPrice  float64   `json:"min_price"`
	WindowMinTime   time.Time `json:"min_price_date"`
	DaysToMax       float64   `json:"days_to_max"`
	DaysToMin       float64   `json:"days_to_min"`
	PercentGain     float64   `json:"max_percent_gain"`
	PercentLoss     float64   `json:"min_percent_loss"`
}

// SkipReason explains why a post produced no ImpactRecord.
type SkipReason string

const (
	// SkipNone means a record was produced.
	SkipNone SkipReason = ""
	// SkipMissingSeries means the protocol has no price series at all.
	SkipMissingSeries SkipReason = "series_missing"
	// SkipNoAnchorMatch means no price sample fell within tolerance of the post time.
	SkipNoAnchorMatch SkipReason = "anchor_unmatched"
	// SkipEmptyWindow means no samples exist inside the forward window.
	SkipEmptyWindow SkipReason = "empty_window"
	// SkipZeroAnchor means the matched anchor price was exactly zero. Flagged
	// separately from the absence cases since it points at bad source data.
	SkipZeroAnchor SkipReason = "zero_anchor_price"
)
