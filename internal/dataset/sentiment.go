package dataset

import (
	"github.com/mkrv/govimpact/internal/model"
)

// WriteScoredTier writes a tier partition with sentiment columns appended.
func WriteScoredTier(path string, records []model.ScoredRecord) error {
	columns := append(append([]string{}, impactColumns...),
		"gain_risk_ratio", "sentiment", "sentiment_score", "sentiment_score_normalized")
	rows := [][]string{columns}
	for _, r := range records {
		rows = append(rows, append(impactRow(r.ImpactRecord),
			formatRatio(r.GainRiskRatio),
			r.Sentiment.Label,
			formatFloat(r.Sentiment.Score),
			formatFloat(r.Sentiment.Normalized),
		))
	}
	return writeCSV(path, rows)
}

// WriteHighSentiment writes the high-sentiment subset with the combined
// ranking columns.
func WriteHighSentiment(path string, records []model.ScoredRecord) error {
	columns := append(append([]string{}, impactColumns...),
		"gain_risk_ratio", "sentiment", "sentiment_score", "sentiment_score_normalized",
		"sentiment_gain_product", "sentiment_z_score", "gain_z_score", "combined_score")
	rows := [][]string{columns}
	for _, r := range records {
		rows = append(rows, append(impactRow(r.ImpactRecord),
			formatRatio(r.GainRiskRatio),
			r.Sentiment.Label,
			formatFloat(r.Sentiment.Score),
			formatFloat(r.Sentiment.Normalized),
			formatFloat(r.GainProduct),
			formatFloat(r.SentimentZ),
			formatFloat(r.GainZ),
			formatFloat(r.CombinedScore),
		))
	}
	return writeCSV(path, rows)
}
