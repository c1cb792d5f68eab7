package pipeline

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/johnbean393/orstats/internal/model"
	"github.com/johnbean393/orstats/internal/pricing"
)

// WarnFunc receives advisory messages about models with missing analytics
// or pricing. May be nil.
type WarnFunc func(format string, args ...any)

// Reconcile joins ranked models, their aggregated activity, and the price
// book into one revenue report for the given date.
//
// Missing data degrades, never aborts: absent activity means zero
// observed tokens, and a model with zero observed tokens gets zero ratios
// and zero revenue regardless of its leaderboard volume — the engine does
// not invent a prompt/completion split it has no evidence for. Absent
// pricing resolves to zero rates, which classifies the model as free.
func Reconcile(
	date string,
	rankings []model.RankedModel,
	activities map[string]model.ActivityWindow,
	book *pricing.Book,
	warnf WarnFunc,
) model.RevenueReport {
	report := model.RevenueReport{
		Date:   date,
		Models: make([]model.RevenueRecord, 0, len(rankings)),
	}

	for _, rm := range rankings {
		activity := activities[rm.Slug]
		observed := activity.ObservedTokens()
		if observed == 0 && warnf != nil {
			warnf("no analytics data for %s, revenue set to $0 (tokens stay as leaderboard total)", rm.Slug)
		}

		rec := model.RevenueRecord{
			Rank:          rm.Rank,
			Slug:          rm.Slug,
			Name:          rm.Name,
			TotalTokens:   rm.TotalTokens,
			PercentChange: rm.PercentChange,

			PromptTokens:     activity.PromptTokens,
			CompletionTokens: activity.CompletionTokens,
			ReasoningTokens:  activity.ReasoningTokens,
			CachedTokens:     activity.CachedTokens,
			RequestCount:     activity.RequestCount,
		}

		if observed > 0 {
			rec.PromptRatio = round4(float64(activity.PromptTokens) / float64(observed))
			rec.CompletionRatio = round4(float64(activity.CompletionTokens) / float64(observed))
			rec.ReasoningRatio = round4(float64(activity.ReasoningTokens) / float64(observed))
		}

		price, found := book.Lookup(rm.Slug)
		if !found && warnf != nil {
			warnf("no pricing found for %s, treating as free", rm.Slug)
		}
		rec.PromptPrice = price.PromptPrice
		rec.CompletionPrice = price.CompletionPrice
		rec.ReasoningPrice = price.ReasoningPrice
		rec.CacheReadPrice = price.CacheReadPrice

		rec.IsFree = price.PromptPrice == 0.0 && price.CompletionPrice == 0.0

		// Completion tokens already include reasoning tokens; billing
		// reasoning separately would double count it.
		revenue := float64(activity.PromptTokens)*price.PromptPrice +
			float64(activity.CompletionTokens)*price.CompletionPrice +
			float64(activity.CachedTokens)*price.CacheReadPrice
		rec.EstimatedRevenue = round2(revenue)

		report.Models = append(report.Models, rec)
	}

	// Output order is by revenue, not by the input volume ranking.
	sort.SliceStable(report.Models, func(i, j int) bool {
		return report.Models[i].EstimatedRevenue > report.Models[j].EstimatedRevenue
	})

	report.TotalModels = len(report.Models)
	report.TotalRevenue = round2(lo.SumBy(report.Models, func(r model.RevenueRecord) float64 {
		return r.EstimatedRevenue
	}))
	report.TotalTokens = lo.SumBy(report.Models, func(r model.RevenueRecord) int64 {
		return r.TotalTokens
	})
	report.FreeModels = lo.CountBy(report.Models, func(r model.RevenueRecord) bool {
		return r.IsFree
	})
	report.PaidModels = report.TotalModels - report.FreeModels

	for _, r := range report.Models {
		report.TokenBreakdown.PromptTokens += r.PromptTokens
		report.TokenBreakdown.CompletionTokens += r.CompletionTokens
		report.TokenBreakdown.ReasoningTokens += r.ReasoningTokens
		report.TokenBreakdown.CachedTokens += r.CachedTokens
	}

	return report
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
