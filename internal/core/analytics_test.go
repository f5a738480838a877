package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyAnalytics(t *testing.T) {
	emails := []*Email{
		{Sentiment: SentimentPositive, Priority: PriorityLow},
		{Sentiment: SentimentNegative, Priority: PriorityHigh},
		{Sentiment: SentimentNegative, Priority: PriorityHigh},
		{Sentiment: SentimentNeutral, Priority: PriorityLow},
		{}, // not yet classified
	}

	stats := TallyAnalytics(emails)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.SentimentStats.Positive)
	assert.Equal(t, 2, stats.SentimentStats.Negative)
	assert.Equal(t, 1, stats.SentimentStats.Neutral)
	assert.Equal(t, 2, stats.PriorityStats.Urgent)
	assert.Equal(t, 2, stats.PriorityStats.Normal)
}

func TestTallyAnalyticsEmpty(t *testing.T) {
	stats := TallyAnalytics(nil)
	assert.Equal(t, AnalyticsStats{}, stats)
}
