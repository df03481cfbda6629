package services

// Trend directions reported on company pages.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// trendThreshold is the minimum average per-call score drift before a
// trend stops being "flat".
const trendThreshold = 1.5

// SentimentLabel maps a 0-100 sentiment score to its display band.
func SentimentLabel(score float64) string {
	switch {
	case score >= 75:
		return "Very Positive"
	case score >= 60:
		return "Positive"
	case score >= 40:
		return "Neutral"
	case score >= 25:
		return "Cautious"
	default:
		return "Negative"
	}
}

// TrendDirection classifies a chronological (oldest-first) score series
// by its average per-step drift.
func TrendDirection(scores []float64) string {
	if len(scores) < 2 {
		return TrendFlat
	}
	drift := (scores[len(scores)-1] - scores[0]) / float64(len(scores)-1)
	switch {
	case drift >= trendThreshold:
		return TrendUp
	case drift <= -trendThreshold:
		return TrendDown
	default:
		return TrendFlat
	}
}
