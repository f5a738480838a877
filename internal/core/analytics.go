package core

// SentimentStats holds sentiment counts for an analytics window
type SentimentStats struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// PriorityStats holds priority counts for an analytics window
type PriorityStats struct {
	Urgent int `json:"urgent"`
	Normal int `json:"normal"`
}

// AnalyticsStats aggregates sentiment and priority counts over a set of emails
type AnalyticsStats struct {
	Total          int            `json:"total"`
	SentimentStats SentimentStats `json:"sentimentStats"`
	PriorityStats  PriorityStats  `json:"priorityStats"`
}

// TallyAnalytics computes exact counts over the given records. Emails with an
// unset sentiment or priority contribute to the total only.
func TallyAnalytics(emails []*Email) AnalyticsStats {
	stats := AnalyticsStats{Total: len(emails)}
	for _, e := range emails {
		switch e.Sentiment {
		case SentimentPositive:
			stats.SentimentStats.Positive++
		case SentimentNegative:
			stats.SentimentStats.Negative++
		case SentimentNeutral:
			stats.SentimentStats.Neutral++
		}
		switch e.Priority {
		case PriorityHigh:
			stats.PriorityStats.Urgent++
		case PriorityLow:
			stats.PriorityStats.Normal++
		}
	}
	return stats
}
