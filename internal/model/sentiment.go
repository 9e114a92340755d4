package model

// SentimentScore is the model-assigned market sentiment for one post.
type SentimentScore struct {
	// Label is "positive" or "negative"; empty when no score was obtained.
	Label string `json:"sentiment"`
	// Score is the raw 0..1 magnitude the model reported for the label.
	Score float64 `json:"sentiment_score"`
	// Normalized folds label and score into one 0..1 trading signal:
	// positive maps to (0.5, 1.0], negative to [0.0, 0.5), unknown to 0.5.
	Normalized float64 `json:"sentiment_score_normalized"`
}

// ScoredRecord is a classified record with its sentiment score. The z-score
// and combined columns are only meaningful relative to the filtered set they
// were computed over.
type ScoredRecord struct {
	ClassifiedRecord

	Sentiment     SentimentScore `json:"sentiment"`
	GainProduct   float64        `json:"sentiment_gain_product"`
	SentimentZ    float64        `json:"sentiment_z_score"`
	GainZ         float64        `json:"gain_z_score"`
	CombinedScore float64        `json:"combined_score"`
}
