package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/johnbean393/orstats/internal/model"
)

// SelectBackfillWeeks picks the target weeks for a backfill run from the
// chart history (ascending order). The current week is excluded when its
// entry is still in progress: a week whose start is less than seven days
// before today has not completed. weeks == 0 means all complete weeks.
func SelectBackfillWeeks(history []model.WeeklyChartEntry, weeks int, today string) []model.WeeklyChartEntry {
	if len(history) == 0 {
		return nil
	}

	complete := history
	last, err1 := time.Parse(dateLayout, history[len(history)-1].WeekStart)
	todayT, err2 := time.Parse(dateLayout, today)
	if err1 == nil && err2 == nil && todayT.Sub(last) < 7*24*time.Hour {
		complete = history[:len(history)-1]
	}

	if weeks > 0 && weeks < len(complete) {
		return complete[len(complete)-weeks:]
	}
	return complete
}

// UniqueSlugs collects every named model slug across the given weeks,
// sorted for a stable fetch order.
func UniqueSlugs(weeks []model.WeeklyChartEntry) []string {
	set := make(map[string]struct{})
	for _, w := range weeks {
		for slug := range w.Models {
			set[slug] = struct{}{}
		}
	}
	slugs := lo.Keys(set)
	sort.Strings(slugs)
	return slugs
}

// BuildWeekRankings turns one chart week into a dense, volume-ordered
// ranking. prevModels holds the prior comparable week's volumes for the
// week-over-week change; models with no prior data get 0.
func BuildWeekRankings(week model.WeeklyChartEntry, prevModels map[string]int64, displayName func(slug string) string) []model.RankedModel {
	type pair struct {
		slug   string
		tokens int64
	}
	sorted := make([]pair, 0, len(week.Models))
	for slug, tokens := range week.Models {
		sorted = append(sorted, pair{slug, tokens})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].tokens != sorted[j].tokens {
			return sorted[i].tokens > sorted[j].tokens
		}
		return sorted[i].slug < sorted[j].slug
	})

	rankings := make([]model.RankedModel, 0, len(sorted))
	for i, p := range sorted {
		pct := 0
		if prev := prevModels[p.slug]; prev > 0 {
			pct = int(math.Round(float64(p.tokens-prev) / float64(prev) * 100))
		}
		rankings = append(rankings, model.RankedModel{
			Rank:          i + 1,
			Slug:          p.slug,
			Name:          displayName(p.slug),
			TotalTokens:   p.tokens,
			PercentChange: pct,
		})
	}
	return rankings
}

// WeekEnd returns the last day of a week starting at weekStart.
func WeekEnd(weekStart string) string {
	t, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return weekStart
	}
	return t.AddDate(0, 0, 6).Format(dateLayout)
}
