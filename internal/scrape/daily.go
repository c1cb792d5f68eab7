package scrape

import (
	"regexp"
	"strconv"

	"github.com/johnbean393/orstats/internal/model"
)

// q matches a quote at a field boundary in either plain or
// backslash-escaped form; model pages emit both depending on how deeply
// the payload is nested.
const q = `(?:\\"|")`

var (
	dailyRe = regexp.MustCompile(
		q + `date` + q + `:` + q + `(\d{4}-\d{2}-\d{2})[^"\\]*` + q + `,` +
			q + `model_permaslug` + q + `:` + q + `[^"\\]*` + q + `,` +
			q + `variant` + q + `:` + q + `([^"\\]*)` + q + `,` +
			q + `total_completion_tokens` + q + `:(\d+),` +
			q + `total_prompt_tokens` + q + `:(\d+),` +
			q + `total_native_tokens_reasoning` + q + `:(\d+),` +
			q + `count` + q + `:(\d+)`)

	// Cached counts come from a structurally different emission and are
	// correlated by date only; its variant granularity differs from the
	// daily entries.
	cachedRe = regexp.MustCompile(
		q + `date` + q + `:` + q + `(\d{4}-\d{2}-\d{2})[^"\\]*` + q + `,` +
			q + `model_permaslug` + q + `.*?` +
			q + `total_native_tokens_cached` + q + `:(\d+)`)
)

// ExtractDailyHistory recovers per-day token analytics from one model
// page. Entries for the same date are summed across serving variants.
// An empty result means the page has no recoverable analytics; the model
// must still be reported downstream, with zero activity.
func ExtractDailyHistory(html string) model.DailyHistory {
	matches := dailyRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return model.DailyHistory{}
	}

	history := make(model.DailyHistory)
	for _, m := range matches {
		date := m[1]
		rec := history[date]
		rec.CompletionTokens += parseCount(m[3])
		rec.PromptTokens += parseCount(m[4])
		rec.ReasoningTokens += parseCount(m[5])
		rec.RequestCount += parseCount(m[6])
		history[date] = rec
	}

	cachedByDate := make(map[string]int64)
	for _, m := range cachedRe.FindAllStringSubmatch(html, -1) {
		cachedByDate[m[1]] += parseCount(m[2])
	}
	for date, cached := range cachedByDate {
		if rec, ok := history[date]; ok {
			rec.CachedTokens = cached
			history[date] = rec
		}
	}

	return history
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
