// Package pipeline turns extracted usage data and pricing into revenue
// reports: window aggregation, reconciliation, and backfill planning.
package pipeline

import (
	"time"

	"github.com/johnbean393/orstats/internal/model"
)

const dateLayout = "2006-01-02"

// SumWindow sums daily activity over the contiguous window of the given
// width ending at endDate. Dates absent from the history contribute zero.
//
// When skipPartial is set and endDate equals today, the in-progress day
// is excluded and one extra earlier day is appended to keep the window
// width: today's analytics are necessarily incomplete and would
// understate real volume. Today is passed in explicitly so results are
// deterministic and testable.
func SumWindow(history model.DailyHistory, endDate string, days int, skipPartial bool, today string) model.ActivityWindow {
	var result model.ActivityWindow

	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return result
	}

	var dates []string
	for i := 0; i < days; i++ {
		d := end.AddDate(0, 0, -i).Format(dateLayout)
		if skipPartial && d == today {
			continue
		}
		dates = append(dates, d)
	}

	// Keep the window at full width when today was dropped.
	if skipPartial && endDate == today && len(dates) < days {
		dates = append(dates, end.AddDate(0, 0, -days).Format(dateLayout))
	}

	for _, d := range dates {
		rec, ok := history[d]
		if !ok {
			continue
		}
		result.PromptTokens += rec.PromptTokens
		result.CompletionTokens += rec.CompletionTokens
		result.ReasoningTokens += rec.ReasoningTokens
		result.CachedTokens += rec.CachedTokens
		result.RequestCount += rec.RequestCount
	}

	return result
}

// LatestDate returns the most recent date present in a daily history,
// or "" when the history is empty.
func LatestDate(history model.DailyHistory) string {
	latest := ""
	for d := range history {
		if d > latest {
			latest = d
		}
	}
	return latest
}
