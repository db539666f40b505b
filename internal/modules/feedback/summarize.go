package feedback

import "time"

// Summarize aggregates parsed feedback per hypothesis. Category averages
// ignore zero values since zero means the category was not rated.
func Summarize(grouped map[uint][]Entry) Summary {
	summary := Summary{
		GeneratedAt:     time.Now(),
		FeedbackSummary: make(map[uint]hypothesisSummary, len(grouped)),
	}

	for id, entries := range grouped {
		if len(entries) == 0 {
			continue
		}

		averages := map[string]float64{
			"validity":          averageOf(entries, func(e Entry) int { return e.Validity }),
			"feasibility":       averageOf(entries, func(e Entry) int { return e.Feasibility }),
			"novelty":           averageOf(entries, func(e Entry) int { return e.Novelty }),
			"policy_importance": averageOf(entries, func(e Entry) int { return e.PolicyImportance }),
			"overall":           averageOf(entries, func(e Entry) int { return e.Overall }),
		}

		latest := entries[0]
		for _, e := range entries[1:] {
			if e.Timestamp.After(latest.Timestamp) {
				latest = e
			}
		}

		summary.FeedbackSummary[id] = hypothesisSummary{
			FeedbackCount:   len(entries),
			AverageRatings:  averages,
			LatestComment:   latest.Comment,
			LatestTimestamp: latest.Timestamp,
			AllFeedbacks:    entries,
		}
		summary.TotalFeedbackCount += len(entries)
	}

	summary.TotalHypothesesWithFeedback = len(summary.FeedbackSummary)
	return summary
}

func averageOf(entries []Entry, value func(Entry) int) float64 {
	sum, n := 0, 0
	for _, e := range entries {
		if v := value(e); v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
