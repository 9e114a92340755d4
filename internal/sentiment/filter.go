package sentiment

import (
	"math"

	"github.com/mkrv/govimpact/internal/model"
)

// HighSentimentThreshold is the raw score above which a post counts as high
// sentiment.
const HighSentimentThreshold = 0.8

// FilterHighSentiment keeps records whose raw sentiment score exceeds the
// threshold (strictly) and fills in the ranking columns: sentiment-gain
// product, z-scores of score and gain over the filtered set, and their mean
// as a combined score. Input order is preserved.
func FilterHighSentiment(records []model.ScoredRecord, threshold float64) []model.ScoredRecord {
	var out []model.ScoredRecord
	for _, r := range records {
		if r.Sentiment.Score > threshold {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return out
	}

	scores := make([]float64, len(out))
	gains := make([]float64, len(out))
	for i, r := range out {
		scores[i] = r.Sentiment.Score
		gains[i] = r.PercentGain
	}
	scoreMean, scoreStd := meanStd(scores)
	gainMean, gainStd := meanStd(gains)

	for i := range out {
		out[i].GainProduct = out[i].Sentiment.Score * out[i].PercentGain
		out[i].SentimentZ = zscore(out[i].Sentiment.Score, scoreMean, scoreStd)
		out[i].GainZ = zscore(out[i].PercentGain, gainMean, gainStd)
		out[i].CombinedScore = (out[i].SentimentZ + out[i].GainZ) / 2
	}
	return out
}

func zscore(v, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (v - mean) / std
}

// Correlation returns the Pearson correlation of two equal-length samples, 0
// when either side has no variance.
func Correlation(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	xMean, xStd := meanStd(xs)
	yMean, yStd := meanStd(ys)
	if xStd == 0 || yStd == 0 {
		return 0
	}
	var sum float64
	for i := range xs {
		sum += (xs[i] - xMean) * (ys[i] - yMean)
	}
	return sum / (float64(len(xs)-1) * xStd * yStd)
}

// meanStd returns the mean and sample standard deviation.
func meanStd(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)-1))
}
