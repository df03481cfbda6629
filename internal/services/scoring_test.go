package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90, "Very Positive"},
		{75, "Very Positive"},
		{74.9, "Positive"},
		{60, "Positive"},
		{59.9, "Neutral"},
		{40, "Neutral"},
		{39.9, "Cautious"},
		{25, "Cautious"},
		{24.9, "Negative"},
		{0, "Negative"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SentimentLabel(tc.score), "score %.1f", tc.score)
	}
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, TrendFlat, TrendDirection(nil))
	assert.Equal(t, TrendFlat, TrendDirection([]float64{50}))
	assert.Equal(t, TrendFlat, TrendDirection([]float64{50, 51}))

	assert.Equal(t, TrendUp, TrendDirection([]float64{40, 50, 60}))
	assert.Equal(t, TrendDown, TrendDirection([]float64{60, 50, 40}))

	// A spike that settles back is flat on average.
	assert.Equal(t, TrendFlat, TrendDirection([]float64{50, 70, 50}))
}
