// Package model defines domain types for orstats pricing, usage, and revenue data.
package model

// PriceRecord holds per-token unit prices for one model, in USD per token.
// A model may be addressable under several aliases; all of them point at
// the same record in the price book.
type PriceRecord struct {
	ID   string
	Name string

	PromptPrice     float64
	CompletionPrice float64
	ReasoningPrice  float64
	ImagePrice      float64
	WebSearchPrice  float64
	CacheReadPrice  float64
	CacheWritePrice float64
}

// WeeklyChartEntry is one week of the rankings page's embedded volume chart.
// Total covers every pair in the source entry, so Total is always at least
// the sum of the named model volumes plus Others.
type WeeklyChartEntry struct {
	WeekStart string // YYYY-MM-DD, week boundary as published by the source
	Models    map[string]int64
	Others    int64
	Total     int64
}

// DailyRecord holds one model's token activity for a single calendar day,
// summed across all serving variants. CompletionTokens includes
// ReasoningTokens; reasoning is never an additional amount.
type DailyRecord struct {
	PromptTokens     int64
	CompletionTokens int64
	ReasoningTokens  int64
	CachedTokens     int64
	RequestCount     int64
}

// DailyHistory maps YYYY-MM-DD dates to daily totals for one model.
type DailyHistory map[string]DailyRecord

// ActivityWindow is the sum of DailyRecord fields over a contiguous date
// range. It is derived per query and never stored.
type ActivityWindow struct {
	PromptTokens     int64
	CompletionTokens int64
	ReasoningTokens  int64
	CachedTokens     int64
	RequestCount     int64
}

// ObservedTokens is the prompt+completion total actually recovered from
// analytics, as distinct from the leaderboard's reported volume.
func (w ActivityWindow) ObservedTokens() int64 {
	return w.PromptTokens + w.CompletionTokens
}

// RankedModel is one leaderboard row for a reporting period.
type RankedModel struct {
	Rank          int
	Slug          string
	Name          string
	TotalTokens   int64
	PercentChange int // signed, 0 when no prior period data
}

// RevenueRecord is the reconciled per-model result for one reporting
// period. JSON field names match the persisted snapshot format exactly;
// historical snapshots are loaded and diffed by downstream tooling.
type RevenueRecord struct {
	Rank          int    `json:"rank"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	TotalTokens   int64  `json:"total_tokens"`
	PercentChange int    `json:"percent_change"`

	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	ReasoningTokens  int64 `json:"reasoning_tokens"`
	CachedTokens     int64 `json:"cached_tokens"`
	RequestCount     int64 `json:"request_count"`

	PromptRatio     float64 `json:"prompt_ratio"`
	CompletionRatio float64 `json:"completion_ratio"`
	ReasoningRatio  float64 `json:"reasoning_ratio"`

	PromptPrice     float64 `json:"prompt_price"`
	CompletionPrice float64 `json:"completion_price"`
	ReasoningPrice  float64 `json:"reasoning_price"`
	CacheReadPrice  float64 `json:"cache_read_price"`

	EstimatedRevenue float64 `json:"estimated_revenue"`
	IsFree           bool    `json:"is_free"`
}

// TokenBreakdown aggregates token counts by type across all models in a
// report.
type TokenBreakdown struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	ReasoningTokens  int64 `json:"reasoning_tokens"`
	CachedTokens     int64 `json:"cached_tokens"`
}

// RevenueReport is the persisted snapshot for one reporting period.
// Models are sorted by estimated revenue descending.
type RevenueReport struct {
	Date           string          `json:"date"`
	Models         []RevenueRecord `json:"models"`
	TotalRevenue   float64         `json:"total_revenue"`
	TotalTokens    int64           `json:"total_tokens"`
	TotalModels    int             `json:"total_models"`
	PaidModels     int             `json:"paid_models"`
	FreeModels     int             `json:"free_models"`
	TokenBreakdown TokenBreakdown  `json:"token_breakdown"`
}
