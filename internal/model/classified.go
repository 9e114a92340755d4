package model

// ClassifiedRecord is an ImpactRecord plus the tags a classification run
// derives from it. Tags live here rather than on the ImpactRecord because a
// record can be re-classified under different thresholds without touching the
// underlying impact data.
type ClassifiedRecord struct {
	ImpactRecord

	ControlledRisk bool `json:"controlled_risk"`
	StopLossHit    bool `json:"stop_loss_hit"`
	// GainRiskRatio is |PercentGain / PercentLoss|, +Inf when the price never
	// dipped below the anchor at all.
	GainRiskRatio float64 `json:"gain_risk_ratio"`
	ActualGainPct float64 `json:"actual_gain_pct"`
}
